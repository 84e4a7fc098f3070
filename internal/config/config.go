// Package config loads a YAML manifest describing a material base's
// starting commitments (SPEC_FULL.md §10.3), compiling it through
// internal/commitment.Store rather than building a base directly — so every
// manifest entry stays retractable by its label in the returned store.
//
// Grounded on the teacher's Schema-from-file convention (pkg/schema.go
// loads table definitions from disk at startup); goccy/go-yaml is used in
// place of encoding/json because the manifest is meant to be hand-authored.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
	pkgerrors "github.com/pkg/errors"

	"github.com/nmms-lang/nmms/internal/commitment"
	"github.com/nmms-lang/nmms/internal/nmmserr"
	"github.com/nmms-lang/nmms/pkg/base"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

// Manifest is the on-disk shape of a base's starting commitments.
type Manifest struct {
	Mode        string            `yaml:"mode"`
	Assertions  []AssertionEntry  `yaml:"assertions"`
	Commitments []CommitmentEntry `yaml:"commitments"`
}

// AssertionEntry is either a bare atom or a (antecedent, consequent) pair.
type AssertionEntry struct {
	Label      string   `yaml:"label"`
	Atom       string   `yaml:"atom,omitempty"`
	Antecedent []string `yaml:"antecedent,omitempty"`
	Consequent []string `yaml:"consequent,omitempty"`
}

// CommitmentEntry is a universal schema commitment (§4.4.2).
type CommitmentEntry struct {
	Label      string   `yaml:"label"`
	Kind       string   `yaml:"kind"` // "concept" or "inference"
	Role       string   `yaml:"role"`
	Individual string   `yaml:"individual"`
	Concept    string   `yaml:"concept"`
	Consequent []string `yaml:"consequent,omitempty"` // inference only
}

func (m Manifest) parseMode() (sentence.Mode, error) {
	switch m.Mode {
	case "", "propositional":
		return sentence.Propositional, nil
	case "rq":
		return sentence.RQ, nil
	default:
		return sentence.Propositional, &nmmserr.SchemaError{Reason: "unknown mode " + m.Mode}
	}
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "reading config %s", path)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, pkgerrors.Wrapf(err, "parsing config %s", path)
	}
	return &m, nil
}

// Compile builds a MaterialBase from the manifest via a commitment.Store,
// so the same store could later be used interactively to retract entries
// by label.
func (m *Manifest) Compile() (*base.MaterialBase, *commitment.Store, error) {
	mode, err := m.parseMode()
	if err != nil {
		return nil, nil, err
	}
	store := commitment.New(mode)

	for _, a := range m.Assertions {
		if a.Atom != "" {
			s, err := sentence.Parse(a.Atom, mode)
			if err != nil {
				return nil, nil, err
			}
			if err := store.AssertAtom(a.Label, s); err != nil {
				return nil, nil, err
			}
			continue
		}
		ant, err := parseAtomList(a.Antecedent, mode)
		if err != nil {
			return nil, nil, err
		}
		con, err := parseAtomList(a.Consequent, mode)
		if err != nil {
			return nil, nil, err
		}
		if err := store.AssertConsequence(a.Label, sentence.FromSlice(ant), sentence.FromSlice(con)); err != nil {
			return nil, nil, err
		}
	}

	for _, c := range m.Commitments {
		switch c.Kind {
		case "concept":
			store.CommitConceptSchema(c.Label, c.Role, c.Individual, c.Concept)
		case "inference":
			con, err := parseAtomList(c.Consequent, mode)
			if err != nil {
				return nil, nil, err
			}
			store.CommitInferenceSchema(c.Label, c.Role, c.Individual, c.Concept, sentence.FromSlice(con))
		default:
			return nil, nil, &nmmserr.SchemaError{Reason: "unknown commitment kind " + c.Kind}
		}
	}

	b, err := store.Compile()
	if err != nil {
		return nil, nil, err
	}
	return b, store, nil
}

func parseAtomList(raw []string, mode sentence.Mode) ([]sentence.Sentence, error) {
	out := make([]sentence.Sentence, 0, len(raw))
	for _, r := range raw {
		s, err := sentence.Parse(r, mode)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
