package sentence

import (
	"fmt"
	"strings"
)

// ParseList parses a comma-separated list of sentences. An empty (or
// whitespace-only) input parses to an empty, non-nil slice — either side of
// a sequent may be empty per §4.1's sequent grammar.
func ParseList(input string, mode Mode) ([]Sentence, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return []Sentence{}, nil
	}
	parts := splitTopLevel(trimmed, ',')
	sentences := make([]Sentence, 0, len(parts))
	for _, part := range parts {
		s, err := Parse(strings.TrimSpace(part), mode)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, s)
	}
	return sentences, nil
}

// ParseSequent parses "Gamma => Delta" into its antecedent and consequent
// sentence lists.
func ParseSequent(input string, mode Mode) (antecedent, consequent []Sentence, err error) {
	return parseSequentLike(input, mode, "=>")
}

// ParseTell parses "Gamma |~ Delta", the surface form used by `tell`
// statements in place of "=>".
func ParseTell(input string, mode Mode) (antecedent, consequent []Sentence, err error) {
	return parseSequentLike(input, mode, "|~")
}

// parseSequentLike splits input on the first top-level occurrence of sep and
// parses each side as a sentence list. Splitting on raw text rather than a
// shared token stream is safe here because neither "=>" nor "|~" can appear
// inside a well-formed sentence — identifiers are letter/digit/underscore
// only — so the first occurrence at nesting depth zero is unambiguous.
func parseSequentLike(input string, mode Mode, sep string) ([]Sentence, []Sentence, error) {
	idx := indexTopLevel(input, sep)
	if idx < 0 {
		return nil, nil, &ParseError{Message: fmt.Sprintf("expected %q separating antecedent from consequent", sep)}
	}
	antecedent, err := ParseList(input[:idx], mode)
	if err != nil {
		return nil, nil, err
	}
	consequent, err := ParseList(input[idx+len(sep):], mode)
	if err != nil {
		return nil, nil, err
	}
	return antecedent, consequent, nil
}

// splitTopLevel splits s on sep, ignoring any sep that falls inside
// parentheses — needed so "hasChild(a,b), Doctor(b)" splits into two
// sentences rather than three.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// indexTopLevel finds the first occurrence of sep outside any parentheses.
func indexTopLevel(s, sep string) int {
	depth := 0
	for i := 0; i+len(sep) <= len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && s[i:i+len(sep)] == sep {
			return i
		}
	}
	return -1
}
