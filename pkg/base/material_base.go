// Package base implements the material base (§4.2 of the specification):
// the atomic language, explicit base consequences, and RQ schemas that back
// the reasoner's is_axiom oracle.
//
// The design is grounded in the teacher's package/database.go: a small
// struct guarding its own invariants behind exported methods, with mutation
// paths returning a typed error rather than panicking.
package base

import (
	"sort"

	"github.com/nmms-lang/nmms/internal/nmmserr"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

// Consequence is a declared base consequence (Γ, Δ), both sides atomic
// (§3, I1).
type Consequence struct {
	Antecedent sentence.Set
	Consequent sentence.Set
}

func (c Consequence) key() string {
	return c.Antecedent.Key() + "\x00" + c.Consequent.Key()
}

// MaterialBase holds the atomic language, explicit consequences, and (RQ
// extension) lazy schemas that is_axiom consults (§3, §4.2, §4.4.2).
//
// Mode fixes whether this base's atoms are bare propositional identifiers
// or RQ concept/role forms — the same distinction the parser enforces
// (§4.1). A base is one or the other for its whole lifetime.
type MaterialBase struct {
	mode         sentence.Mode
	language     sentence.Set
	consequences map[string]Consequence
	schemas      []Schema
}

// New constructs an empty MaterialBase in the given mode.
func New(mode sentence.Mode) *MaterialBase {
	return &MaterialBase{
		mode:         mode,
		language:     sentence.EmptySet,
		consequences: make(map[string]Consequence),
	}
}

// Mode reports which parsing mode this base's atoms belong to.
func (b *MaterialBase) Mode() sentence.Mode { return b.mode }

// Language returns the base's atomic language (I1: every member is atomic).
func (b *MaterialBase) Language() sentence.Set { return b.language }

// Consequences returns the declared base consequences, sorted by their
// canonical key (antecedent key, then consequent key).
func (b *MaterialBase) Consequences() []Consequence {
	out := make([]Consequence, 0, len(b.consequences))
	for _, c := range b.consequences {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key() < out[j].key() })
	return out
}

// Schemas returns the registered RQ schemas, in registration order.
func (b *MaterialBase) Schemas() []Schema {
	return append([]Schema(nil), b.schemas...)
}

// AddAtom inserts a into the language. a must be atomic (I1); otherwise
// AddAtom returns a *nmmserr.ValidationError and leaves the base unchanged.
func (b *MaterialBase) AddAtom(a sentence.Sentence) error {
	if !a.IsAtomic() {
		return &nmmserr.ValidationError{
			Context:  "add_atom",
			Sentence: a,
			Reason:   a.String() + " is not an atomic sentence",
		}
	}
	b.language = b.language.Add(a)
	return nil
}

// AddConsequence registers (gamma, delta) as a base consequence. Both sides
// must contain only atomic sentences (I1); on success their members are
// also inserted into the language as a convenience. Duplicate consequences
// collapse (I2).
func (b *MaterialBase) AddConsequence(gamma, delta sentence.Set) error {
	if bad, ok := sentence.FirstNonAtomic(gamma); ok {
		return &nmmserr.ValidationError{Context: "add_consequence", Sentence: bad, Reason: "antecedent " + gamma.String() + " contains a non-atomic sentence"}
	}
	if bad, ok := sentence.FirstNonAtomic(delta); ok {
		return &nmmserr.ValidationError{Context: "add_consequence", Sentence: bad, Reason: "consequent " + delta.String() + " contains a non-atomic sentence"}
	}
	c := Consequence{Antecedent: gamma, Consequent: delta}
	b.consequences[c.key()] = c
	for _, a := range gamma.Sorted() {
		b.language = b.language.Add(a)
	}
	for _, a := range delta.Sorted() {
		b.language = b.language.Add(a)
	}
	return nil
}

// AddConceptSchema registers a concept schema (§4.4.2): {R(a,b)} |~ {C(b)}
// for every b such that R(a,b) is present in the queried Γ.
func (b *MaterialBase) AddConceptSchema(role, individual, concept string) {
	b.schemas = append(b.schemas, Schema{
		Kind:       ConceptSchema,
		Role:       role,
		Individual: individual,
		Concept:    concept,
	})
}

// AddInferenceSchema registers an inference schema (§4.4.2):
// {R(a,b), C(b)} |~ consequent for every witness b mentioned in the queried
// context.
func (b *MaterialBase) AddInferenceSchema(role, individual, concept string, consequent sentence.Set) {
	b.schemas = append(b.schemas, Schema{
		Kind:       InferenceSchema,
		Role:       role,
		Individual: individual,
		Concept:    concept,
		Consequent: consequent,
	})
}

// IsAxiom decides Ax1 (Containment), Ax2 (explicit base consequence), and
// Ax3 (RQ schema match) — the pivotal contract of §4.2. It is a pure
// function of the base's current state.
func (b *MaterialBase) IsAxiom(gamma, delta sentence.Set) bool {
	// Ax1: Containment.
	if gamma.Intersects(delta) {
		return true
	}

	// Ax2: exact-match base consequence. No subset, superset, or
	// permutation-based weakening.
	c := Consequence{Antecedent: gamma, Consequent: delta}
	if _, ok := b.consequences[c.key()]; ok {
		return true
	}

	// Ax3: RQ schema match.
	for _, s := range b.schemas {
		if s.admits(gamma, delta) {
			return true
		}
	}

	return false
}
