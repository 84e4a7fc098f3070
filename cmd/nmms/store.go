package main

import (
	"fmt"

	"github.com/spf13/cobra"

	internalstore "github.com/nmms-lang/nmms/internal/store"
)

// newStoreCmd groups subcommands over the boltdb-backed named-base registry
// (SPEC_FULL.md §12), grounded on the teacher's package/database.go Open
// convention: one file, many named records, opened for the duration of the
// subcommand and closed before it returns.
func newStoreCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage named material bases in a boltdb-backed store",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "nmms.db", "path to the boltdb store file")

	cmd.AddCommand(
		newStoreListCmd(&dbPath),
		newStoreSaveCmd(&dbPath),
		newStoreLoadCmd(&dbPath),
		newStoreDeleteCmd(&dbPath),
	)
	return cmd
}

func newStoreListCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the named bases in the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := internalstore.Open(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			names, err := s.Names()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}
}

func newStoreSaveCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save NAME",
		Short: "Save --base's material base under NAME in the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBase(basePath, false)
			if err != nil {
				return err
			}
			s, err := internalstore.Open(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Save(args[0], b); err != nil {
				return err
			}
			printSuccess("saved %s into %s", args[0], *dbPath)
			return nil
		},
	}
}

func newStoreLoadCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "load NAME",
		Short: "Load NAME from the store into --base's file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := internalstore.Open(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			b, err := s.Load(args[0], mode())
			if err != nil {
				return err
			}
			if err := saveBase(b, basePath); err != nil {
				return err
			}
			printSuccess("loaded %s from %s", args[0], *dbPath)
			return nil
		},
	}
}

func newStoreDeleteCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete NAME from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := internalstore.Open(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Delete(args[0]); err != nil {
				return err
			}
			printSuccess("deleted %s from %s", args[0], *dbPath)
			return nil
		},
	}
}
