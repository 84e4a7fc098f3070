// Command nmms is the CLI surface over the reasoner core (§6): tell, ask,
// repl, serve, connect, batch, compile, and store. The core provides the semantics; this
// package is glue, grounded on the teacher's flag-based cmd/server and
// cmd/shell mains but built with github.com/spf13/cobra, the way the
// broader example corpus structures multi-subcommand CLIs.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/robertkrimen/isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nmms-lang/nmms/internal/telemetry"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

var (
	basePath string
	rqMode   bool
	verbose  bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nmms",
		Short: "An automated reasoner for the NMMS sequent calculus",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogging()
		},
	}
	root.PersistentFlags().StringVarP(&basePath, "base", "b", "", "path to the material base JSON file")
	root.PersistentFlags().BoolVar(&rqMode, "rq", false, "parse sentences in the restricted-quantifier extension")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newTellCmd(),
		newAskCmd(),
		newReplCmd(),
		newServeCmd(),
		newConnectCmd(),
		newBatchCmd(),
		newCompileCmd(),
		newStoreCmd(),
	)
	return root
}

func initLogging() error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	telemetry.Init(l)
	return nil
}

func mode() sentence.Mode {
	if rqMode {
		return sentence.RQ
	}
	return sentence.Propositional
}

// colorable gates ANSI color on whether stdout is a terminal, the way the
// teacher's cmd/shell gates its prompt on isatty.Check.
func colorable() bool {
	return isatty.Check(os.Stdout.Fd())
}

func printSuccess(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if colorable() {
		color.Green("%s", msg)
	} else {
		fmt.Println(msg)
	}
}

func printFailure(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if colorable() {
		color.Red("%s", msg)
	} else {
		fmt.Println(msg)
	}
}

func printError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if colorable() {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, msg)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
}
