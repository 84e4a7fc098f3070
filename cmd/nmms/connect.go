package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	nmmsclient "github.com/nmms-lang/nmms/pkg/client"
)

func newConnectCmd() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "connect STATEMENT",
		Short: "Send one tell or ask statement to a running nmms server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnect(url, args[0])
		},
	}
	cmd.Flags().StringVar(&url, "url", "ws://127.0.0.1:9000/ws", "URL of the nmms server to connect to")
	return cmd
}

func runConnect(url, statement string) error {
	c, err := nmmsclient.Dial(url)
	if err != nil {
		printError("couldn't connect: %s", err)
		return err
	}
	defer c.Close()

	if name, ok := isAtomStatement(statement); ok {
		if err := c.AddAtom(name); err != nil {
			printError("error: %s", err)
			return err
		}
		printSuccess("added atom %s", name)
		return nil
	}

	if isTell, ant, con := splitTellOrAsk(statement); isTell {
		if err := c.Tell(ant, con); err != nil {
			printError("error: %s", err)
			return err
		}
		printSuccess("told %s |~ %s", ant, con)
		return nil
	} else {
		result, err := c.Query(ant, con, 0, func(line string) {
			fmt.Println(line)
		})
		if err != nil {
			printError("error: %s", err)
			return err
		}
		if result.Derivable {
			printSuccess("DERIVABLE")
		} else {
			printFailure("NOT DERIVABLE")
		}
	}
	return nil
}

// splitTellOrAsk distinguishes a tell statement ("Γ |~ Δ") from an ask
// sequent ("Γ => Δ"), since the wire protocol needs the two sides split
// before sending. Any statement containing "|~" is a tell, split at its
// first "|~"; otherwise it is an ask, split at the first "=>".
func splitTellOrAsk(statement string) (isTell bool, antecedent, consequent string) {
	if idx := strings.Index(statement, "|~"); idx >= 0 {
		return true, strings.TrimSpace(statement[:idx]), strings.TrimSpace(statement[idx+len("|~"):])
	}
	idx := strings.Index(statement, "=>")
	if idx < 0 {
		return false, statement, ""
	}
	return false, strings.TrimSpace(statement[:idx]), strings.TrimSpace(statement[idx+len("=>"):])
}
