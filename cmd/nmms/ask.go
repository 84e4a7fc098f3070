package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmms-lang/nmms/pkg/reasoner"
)

func newAskCmd() *cobra.Command {
	var (
		trace    bool
		maxDepth int
		asJSON   bool
		quiet    bool
	)
	cmd := &cobra.Command{
		Use:   "ask SEQUENT",
		Short: "Query whether a sequent is derivable",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(runAsk(args[0], trace, maxDepth, asJSON, quiet))
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "print the proof trace")
	cmd.Flags().IntVar(&maxDepth, "max-depth", reasoner.DefaultMaxDepth, "recursion depth limit")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress all output; only set the exit code")
	return cmd
}

// runAsk returns the grep-style exit code: 0 derivable, 2 not derivable, 1 error.
func runAsk(sequent string, trace bool, maxDepth int, asJSON bool, quiet bool) int {
	b, err := loadBase(basePath, false)
	if err != nil {
		printError("error: %s", err)
		return 1
	}

	gamma, delta, err := parseSequentArg(sequent)
	if err != nil {
		printError("error: %s", err)
		return 1
	}

	r := reasoner.New(b, reasoner.WithMaxDepth(maxDepth))
	result := r.Derives(gamma, delta)

	if quiet {
		return exitCodeFor(result.Derivable)
	}

	if asJSON {
		out := map[string]interface{}{
			"derivable":     result.Derivable,
			"depth_reached": result.DepthReached,
			"cache_hits":    result.CacheHits,
		}
		if trace {
			out["trace"] = result.Trace
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return exitCodeFor(result.Derivable)
	}

	if trace {
		for _, line := range result.Trace {
			fmt.Println(line)
		}
	}
	if result.Derivable {
		printSuccess("DERIVABLE")
	} else {
		printFailure("NOT DERIVABLE")
	}
	return exitCodeFor(result.Derivable)
}

func exitCodeFor(derivable bool) int {
	if derivable {
		return 0
	}
	return 2
}
