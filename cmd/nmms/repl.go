package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/robertkrimen/isatty"
	"github.com/spf13/cobra"

	"github.com/nmms-lang/nmms/pkg/base"
	"github.com/nmms-lang/nmms/pkg/reasoner"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive tell/ask session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

// replSession is grounded on the teacher's cmd/shell/shell.go: a readline
// loop dispatching on a fixed set of leading keywords, holding the small
// bit of session state (the current base, whether tracing is on) that a
// one-shot CLI invocation wouldn't need.
type replSession struct {
	b        *base.MaterialBase
	trace    bool
	maxDepth int
}

func runRepl() error {
	b, err := loadBase(basePath, true)
	if err != nil {
		return err
	}
	session := &replSession{b: b, maxDepth: reasoner.DefaultMaxDepth}

	isTTY := isatty.Check(os.Stdin.Fd())
	prompt := ""
	if isTTY {
		prompt = "nmms> "
		fmt.Println("nmms REPL")
		fmt.Println("type 'help' for commands")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       "/tmp/.nmms-history",
		InterruptPrompt:   "^C",
		EOFPrompt:         "bye!",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Println("bye!")
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		session.dispatch(line)
	}
}

func (s *replSession) dispatch(line string) {
	switch {
	case line == "help":
		s.help()
	case line == "quit" || line == "exit":
		fmt.Println("bye!")
		os.Exit(0)
	case line == "show":
		s.show()
	case line == "trace on":
		s.trace = true
	case line == "trace off":
		s.trace = false
	case strings.HasPrefix(line, "save "):
		s.save(strings.TrimSpace(strings.TrimPrefix(line, "save ")))
	case strings.HasPrefix(line, "load "):
		s.load(strings.TrimSpace(strings.TrimPrefix(line, "load ")))
	case strings.HasPrefix(line, "tell "):
		s.tell(strings.TrimSpace(strings.TrimPrefix(line, "tell ")))
	case strings.HasPrefix(line, "ask "):
		s.ask(strings.TrimSpace(strings.TrimPrefix(line, "ask ")))
	default:
		fmt.Println("unrecognized command; type 'help'")
	}
}

func (s *replSession) help() {
	fmt.Println("tell STATEMENT     add an atom or base consequence")
	fmt.Println("ask SEQUENT        query derivability")
	fmt.Println("show               print the current base")
	fmt.Println("trace on|off       toggle proof-trace printing")
	fmt.Println("save FILE          save the base to FILE")
	fmt.Println("load FILE          load the base from FILE")
	fmt.Println("help               show this message")
	fmt.Println("quit               exit")
}

func (s *replSession) show() {
	fmt.Println("language:", s.b.Language())
	for _, c := range s.b.Consequences() {
		fmt.Printf("  %s |~ %s\n", c.Antecedent, c.Consequent)
	}
}

func (s *replSession) save(path string) {
	if err := s.b.ToFile(path); err != nil {
		printError("error: %s", err)
		return
	}
	printSuccess("saved to %s", path)
}

func (s *replSession) load(path string) {
	b, err := base.FromFile(path, mode())
	if err != nil {
		printError("error: %s", err)
		return
	}
	s.b = b
	printSuccess("loaded %s", path)
}

func (s *replSession) tell(statement string) {
	if _, ok := isAtomStatement(statement); ok {
		a, err := parseAtomArg(statement)
		if err != nil {
			printError("error: %s", err)
			return
		}
		if err := s.b.AddAtom(a); err != nil {
			printError("error: %s", err)
			return
		}
		printSuccess("added atom %s", a)
		return
	}

	gamma, delta, err := parseTellArg(statement)
	if err != nil {
		printError("error: %s", err)
		return
	}
	if err := s.b.AddConsequence(gamma, delta); err != nil {
		printError("error: %s", err)
		return
	}
	printSuccess("told %s |~ %s", gamma, delta)
}

func (s *replSession) ask(sequent string) {
	gamma, delta, err := parseSequentArg(sequent)
	if err != nil {
		printError("error: %s", err)
		return
	}
	r := reasoner.New(s.b, reasoner.WithMaxDepth(s.maxDepth))
	result := r.Derives(gamma, delta)
	if s.trace {
		for _, line := range result.Trace {
			fmt.Println(line)
		}
	}
	if result.Derivable {
		printSuccess("DERIVABLE")
	} else {
		printFailure("NOT DERIVABLE")
	}
}
