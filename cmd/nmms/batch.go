package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nmms-lang/nmms/pkg/reasoner"
)

func newBatchCmd() *cobra.Command {
	var maxDepth int
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Run one tell/ask statement per line from FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args[0], maxDepth)
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", reasoner.DefaultMaxDepth, "recursion depth limit for ask lines")
	return cmd
}

// runBatch reads one statement per line (§6): '#' introduces a comment,
// blank lines are skipped, and each remaining line is an atom statement
// ("atom X"), a tell statement (containing "|~"), or an ask sequent
// (containing "=>").
func runBatch(path string, maxDepth int) error {
	b, err := loadBase(basePath, true)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	failed := false
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "atom "):
			a, err := parseAtomArg(line)
			if err != nil {
				printError("line %d: %s", lineNum, err)
				failed = true
				continue
			}
			if err := b.AddAtom(a); err != nil {
				printError("line %d: %s", lineNum, err)
				failed = true
				continue
			}
			printSuccess("line %d: added atom %s", lineNum, a)

		case strings.Contains(line, "|~"):
			gamma, delta, err := parseTellArg(line)
			if err != nil {
				printError("line %d: %s", lineNum, err)
				failed = true
				continue
			}
			if err := b.AddConsequence(gamma, delta); err != nil {
				printError("line %d: %s", lineNum, err)
				failed = true
				continue
			}
			printSuccess("line %d: told %s |~ %s", lineNum, gamma, delta)

		case strings.Contains(line, "=>"):
			gamma, delta, err := parseSequentArg(line)
			if err != nil {
				printError("line %d: %s", lineNum, err)
				failed = true
				continue
			}
			r := reasoner.New(b, reasoner.WithMaxDepth(maxDepth))
			result := r.Derives(gamma, delta)
			if result.Derivable {
				printSuccess("line %d: DERIVABLE", lineNum)
			} else {
				printFailure("line %d: NOT DERIVABLE", lineNum)
			}

		default:
			printError("line %d: cannot tell a tell statement from an ask sequent: %q", lineNum, line)
			failed = true
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := saveBase(b, basePath); err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("one or more batch lines failed")
	}
	return nil
}
