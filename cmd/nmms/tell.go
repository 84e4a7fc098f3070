package main

import (
	"github.com/spf13/cobra"
)

func newTellCmd() *cobra.Command {
	var create bool
	cmd := &cobra.Command{
		Use:   "tell STATEMENT",
		Short: "Add an atom or a base consequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTell(args[0], create)
		},
	}
	cmd.Flags().BoolVar(&create, "create", false, "create the base file if it doesn't exist")
	return cmd
}

func runTell(statement string, create bool) error {
	b, err := loadBase(basePath, create)
	if err != nil {
		printError("error: %s", err)
		return err
	}

	if _, ok := isAtomStatement(statement); ok {
		a, err := parseAtomArg(statement)
		if err != nil {
			printError("error: %s", err)
			return err
		}
		if err := b.AddAtom(a); err != nil {
			printError("error: %s", err)
			return err
		}
		if err := saveBase(b, basePath); err != nil {
			printError("error: %s", err)
			return err
		}
		printSuccess("added atom %s", a)
		return nil
	}

	gamma, delta, err := parseTellArg(statement)
	if err != nil {
		printError("error: %s", err)
		return err
	}
	if err := b.AddConsequence(gamma, delta); err != nil {
		printError("error: %s", err)
		return err
	}
	if err := saveBase(b, basePath); err != nil {
		printError("error: %s", err)
		return err
	}
	printSuccess("told %s |~ %s", gamma, delta)
	return nil
}
