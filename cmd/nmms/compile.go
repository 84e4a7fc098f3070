package main

import (
	"github.com/spf13/cobra"

	"github.com/nmms-lang/nmms/internal/config"
)

func newCompileCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "compile CONFIG.yaml",
		Short: "Compile a YAML commitment manifest into a material base file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "path to write the compiled base JSON to (defaults to --base)")
	return cmd
}

func runCompile(configPath, out string) error {
	manifest, err := config.Load(configPath)
	if err != nil {
		return err
	}
	b, store, err := manifest.Compile()
	if err != nil {
		return err
	}

	dest := out
	if dest == "" {
		dest = basePath
	}
	if dest == "" {
		printError("compile: no destination; pass --out or --base")
		return nil
	}
	if err := b.ToFile(dest); err != nil {
		return err
	}
	printSuccess("compiled %d commitment(s) into %s", len(store.Labels()), dest)
	return nil
}
