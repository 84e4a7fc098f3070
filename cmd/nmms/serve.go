package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nmms-lang/nmms/internal/store"
	"github.com/nmms-lang/nmms/pkg/base"
	"github.com/nmms-lang/nmms/pkg/reasoner"
	"github.com/nmms-lang/nmms/pkg/server"
)

// storeBaseName is the fixed key a serve-session's base is stored under
// within its bolt store — one server process serves one base, so there is
// never more than one name to pick.
const storeBaseName = "served"

func newServeCmd() *cobra.Command {
	var (
		host      string
		port      int
		maxDepth  int
		storeSpec string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a material base for remote reasoning over a websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, maxDepth, storeSpec)
		},
	}
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "host to listen on")
	cmd.Flags().IntVar(&port, "port", 9000, "port to listen on")
	cmd.Flags().IntVar(&maxDepth, "max-depth", reasoner.DefaultMaxDepth, "default recursion depth limit for queries")
	cmd.Flags().StringVar(&storeSpec, "store", "", "bolt://PATH: persist tells to a durable boltdb store instead of --base's flat file")
	return cmd
}

func runServe(host string, port int, maxDepth int, storeSpec string) error {
	if storeSpec != "" {
		return runServeWithStore(host, port, maxDepth, storeSpec)
	}

	b, err := loadBase(basePath, true)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	name := basePath
	if name == "" {
		name = "(in-memory)"
	}
	s := server.New(addr, name, b, maxDepth)
	return runServerUntilSignal(s, name, addr)
}

// runServeWithStore persists every wire `tell` to a boltdb file instead of
// --base's flat JSON file, per SPEC_FULL.md §12. The base is seeded from the
// store if it already holds one under storeBaseName, falling back to
// --base (or an empty base) on first run.
func runServeWithStore(host string, port int, maxDepth int, storeSpec string) error {
	path, ok := strings.CutPrefix(storeSpec, "bolt://")
	if !ok {
		return fmt.Errorf("--store must be of the form bolt://PATH, got %q", storeSpec)
	}

	st, err := store.Open(path)
	if err != nil {
		return err
	}

	b, err := st.Load(storeBaseName, mode())
	if err != nil {
		b, err = loadBase(basePath, true)
		if err != nil {
			st.Close()
			return err
		}
		if err := st.Save(storeBaseName, b); err != nil {
			st.Close()
			return err
		}
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	s := server.New(addr, storeSpec, b, maxDepth)
	s.SetPersistHook(func(current *base.MaterialBase) error {
		return st.Save(storeBaseName, current)
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("shutting down...")
		s.Close()
		st.Close()
		os.Exit(0)
	}()

	fmt.Printf("serving %s at ws://%s/ws\n", storeSpec, addr)
	return s.ListenAndServe()
}

func runServerUntilSignal(s *server.Server, name, addr string) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("shutting down...")
		s.Close()
		os.Exit(0)
	}()

	fmt.Printf("serving %s at ws://%s/ws\n", name, addr)
	return s.ListenAndServe()
}
