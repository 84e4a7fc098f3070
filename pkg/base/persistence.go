package base

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/nmms-lang/nmms/internal/nmmserr"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

// consequenceDict is the wire shape of one entry in "consequences" (§6).
type consequenceDict struct {
	Antecedent []string `json:"antecedent"`
	Consequent []string `json:"consequent"`
}

// schemaDict is the wire shape of one entry in "schemas" (§6). Consequent is
// omitted for concept schemas.
type schemaDict struct {
	Kind       string   `json:"kind"`
	Role       string   `json:"role"`
	Individual string   `json:"individual"`
	Concept    string   `json:"concept"`
	Consequent []string `json:"consequent,omitempty"`
}

// baseDict is the top-level wire shape (§6).
type baseDict struct {
	Language     []string          `json:"language"`
	Consequences []consequenceDict `json:"consequences"`
	Schemas      []schemaDict      `json:"schemas,omitempty"`
}

// ToDict renders the base to its JSON wire representation.
func (b *MaterialBase) ToDict() ([]byte, error) {
	d := baseDict{}
	for _, a := range b.language.Sorted() {
		d.Language = append(d.Language, a.String())
	}
	for _, c := range b.Consequences() {
		var ant, con []string
		for _, a := range c.Antecedent.Sorted() {
			ant = append(ant, a.String())
		}
		for _, a := range c.Consequent.Sorted() {
			con = append(con, a.String())
		}
		d.Consequences = append(d.Consequences, consequenceDict{Antecedent: ant, Consequent: con})
	}
	for _, s := range b.schemas {
		sd := schemaDict{Kind: s.Kind.String(), Role: s.Role, Individual: s.Individual, Concept: s.Concept}
		if s.Kind == InferenceSchema {
			for _, a := range s.Consequent.Sorted() {
				sd.Consequent = append(sd.Consequent, a.String())
			}
		}
		d.Schemas = append(d.Schemas, sd)
	}
	return json.MarshalIndent(d, "", "  ")
}

// FromDict reconstructs a MaterialBase from its JSON wire representation.
// Every atom string is re-parsed and re-validated as atomic (§6: "On load,
// the base re-validates").
func FromDict(data []byte, mode sentence.Mode) (*MaterialBase, error) {
	var d baseDict
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "decoding base JSON")
	}

	b := New(mode)

	for _, raw := range d.Language {
		a, err := parseAtom(raw, mode)
		if err != nil {
			return nil, err
		}
		if err := b.AddAtom(a); err != nil {
			return nil, err
		}
	}

	for _, cd := range d.Consequences {
		ant, err := parseAtoms(cd.Antecedent, mode)
		if err != nil {
			return nil, err
		}
		con, err := parseAtoms(cd.Consequent, mode)
		if err != nil {
			return nil, err
		}
		if err := b.AddConsequence(sentence.FromSlice(ant), sentence.FromSlice(con)); err != nil {
			return nil, err
		}
	}

	for _, sd := range d.Schemas {
		switch sd.Kind {
		case "concept":
			b.AddConceptSchema(sd.Role, sd.Individual, sd.Concept)
		case "inference":
			con, err := parseAtoms(sd.Consequent, mode)
			if err != nil {
				return nil, err
			}
			b.AddInferenceSchema(sd.Role, sd.Individual, sd.Concept, sentence.FromSlice(con))
		default:
			return nil, &nmmserr.SchemaError{Reason: "unknown schema kind " + sd.Kind}
		}
	}

	return b, nil
}

func parseAtom(raw string, mode sentence.Mode) (sentence.Sentence, error) {
	s, err := sentence.Parse(raw, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing atom %q", raw)
	}
	if !s.IsAtomic() {
		return nil, &nmmserr.ValidationError{Context: "from_dict", Sentence: s, Reason: raw + " is not an atomic sentence"}
	}
	return s, nil
}

func parseAtoms(raw []string, mode sentence.Mode) ([]sentence.Sentence, error) {
	out := make([]sentence.Sentence, 0, len(raw))
	for _, r := range raw {
		a, err := parseAtom(r, mode)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// ToFile writes the base's JSON representation to path.
func (b *MaterialBase) ToFile(path string) error {
	data, err := b.ToDict()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing base to %s", path)
	}
	return nil
}

// FromFile reads and reconstructs a MaterialBase from path.
func FromFile(path string, mode sentence.Mode) (*MaterialBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading base from %s", path)
	}
	return FromDict(data, mode)
}
