// Package sentence implements the NMMS object language: propositional
// connectives over atoms, concept/role assertions, and the two restricted
// quantifiers ALL R.C and SOME R.C.
package sentence

import "fmt"

// Sentence is the sum type of the NMMS object language. Every variant is an
// immutable value: once built, a Sentence never changes, and two Sentences
// built from the same source text compare equal via their canonical string
// form (returned by String). That canonical form doubles as the hash key
// used throughout the base and reasoner packages, so Sentence values never
// need a separate identity.
type Sentence interface {
	fmt.Stringer

	// IsAtomic reports whether this sentence is one of the three atom
	// variants (Atom, ConceptAtom, RoleAtom). Complex sentences (Not, And,
	// Or, Implies, AllRestrict, SomeRestrict) return false.
	IsAtomic() bool

	sentenceNode()
}

// Atom is a bare propositional atom, e.g. "rain".
type Atom struct {
	Name string
}

func (Atom) sentenceNode()   {}
func (Atom) IsAtomic() bool  { return true }
func (a Atom) String() string { return a.Name }

// ConceptAtom is an RQ concept assertion C(a): "individual a is a C".
type ConceptAtom struct {
	Concept    string
	Individual string
}

func (ConceptAtom) sentenceNode()  {}
func (ConceptAtom) IsAtomic() bool { return true }
func (c ConceptAtom) String() string {
	return fmt.Sprintf("%s(%s)", c.Concept, c.Individual)
}

// RoleAtom is an RQ role assertion R(a,b): "a stands in role R to b".
type RoleAtom struct {
	Role    string
	Subject string
	Object  string
}

func (RoleAtom) sentenceNode()  {}
func (RoleAtom) IsAtomic() bool { return true }
func (r RoleAtom) String() string {
	return fmt.Sprintf("%s(%s,%s)", r.Role, r.Subject, r.Object)
}

// Not is propositional negation, ~A.
type Not struct {
	Sub Sentence
}

func (Not) sentenceNode()  {}
func (Not) IsAtomic() bool { return false }
func (n Not) String() string {
	return "~" + n.Sub.String()
}

// And is binary conjunction, A & B (left-associative in the surface syntax).
type And struct {
	Left, Right Sentence
}

func (And) sentenceNode()  {}
func (And) IsAtomic() bool { return false }
func (a And) String() string {
	return fmt.Sprintf("(%s & %s)", a.Left, a.Right)
}

// Or is binary disjunction, A | B (left-associative in the surface syntax).
type Or struct {
	Left, Right Sentence
}

func (Or) sentenceNode()  {}
func (Or) IsAtomic() bool { return false }
func (o Or) String() string {
	return fmt.Sprintf("(%s | %s)", o.Left, o.Right)
}

// Implies is material implication, A -> B (right-associative in the surface
// syntax).
type Implies struct {
	Left, Right Sentence
}

func (Implies) sentenceNode()  {}
func (Implies) IsAtomic() bool { return false }
func (i Implies) String() string {
	return fmt.Sprintf("(%s -> %s)", i.Left, i.Right)
}

// AllRestrict is the RQ universal restriction "ALL R.C(a)": all R-successors
// of individual a are C.
type AllRestrict struct {
	Role       string
	Concept    string
	Individual string
}

func (AllRestrict) sentenceNode()  {}
func (AllRestrict) IsAtomic() bool { return false }
func (a AllRestrict) String() string {
	return fmt.Sprintf("ALL %s.%s(%s)", a.Role, a.Concept, a.Individual)
}

// SomeRestrict is the RQ existential restriction "SOME R.C(a)": some
// R-successor of individual a is C.
type SomeRestrict struct {
	Role       string
	Concept    string
	Individual string
}

func (SomeRestrict) sentenceNode()  {}
func (SomeRestrict) IsAtomic() bool { return false }
func (s SomeRestrict) String() string {
	return fmt.Sprintf("SOME %s.%s(%s)", s.Role, s.Concept, s.Individual)
}

// IsComplex is the negation of Sentence.IsAtomic, spelled out for readability
// at call sites that drive the proof search's rule selection.
func IsComplex(s Sentence) bool {
	return !s.IsAtomic()
}
