package main

import (
	"os"
	"strings"

	"github.com/nmms-lang/nmms/pkg/base"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

// loadBase opens basePath, or (if create is true and the file doesn't yet
// exist) returns a fresh empty base in the configured mode.
func loadBase(path string, create bool) (*base.MaterialBase, error) {
	if path == "" {
		return base.New(mode()), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if create {
			return base.New(mode()), nil
		}
		return nil, err
	}
	return base.FromFile(path, mode())
}

func saveBase(b *base.MaterialBase, path string) error {
	if path == "" {
		return nil
	}
	return b.ToFile(path)
}

func parseSequentArg(arg string) (gamma, delta sentence.Set, err error) {
	ant, con, err := sentence.ParseSequent(arg, mode())
	if err != nil {
		return sentence.EmptySet, sentence.EmptySet, err
	}
	return sentence.FromSlice(ant), sentence.FromSlice(con), nil
}

func parseTellArg(arg string) (gamma, delta sentence.Set, err error) {
	ant, con, err := sentence.ParseTell(arg, mode())
	if err != nil {
		return sentence.EmptySet, sentence.EmptySet, err
	}
	return sentence.FromSlice(ant), sentence.FromSlice(con), nil
}

// isAtomStatement reports whether a tell statement is the bare-atom form
// ("atom X [DESCRIPTION]") rather than a "Γ |~ Δ" consequence.
func isAtomStatement(statement string) (name string, ok bool) {
	rest, ok := strings.CutPrefix(statement, "atom ")
	if !ok {
		return "", false
	}
	name, _, _ = strings.Cut(strings.TrimSpace(rest), " ")
	return name, true
}

func parseAtomArg(statement string) (sentence.Sentence, error) {
	name, _ := isAtomStatement(statement)
	return sentence.Parse(name, mode())
}
