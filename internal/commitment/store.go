// Package commitment implements the commitment store convenience layer
// (§4.4.4): a builder that accepts labelled assertions and universal
// commitments and compiles them into a base.MaterialBase plus its schema
// set. Retracting a label removes exactly the contribution it added.
//
// This generalizes the reference implementation's CommitmentStore (a
// pynmms.rq.base helper) into a mode-agnostic builder usable for both
// propositional and RQ bases, grounded on the teacher's Database type
// (package/database.go): a small in-memory registry that produces a
// fully-formed value on demand rather than mutating shared state in place.
package commitment

import (
	"github.com/nmms-lang/nmms/internal/nmmserr"
	"github.com/nmms-lang/nmms/pkg/base"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

type entryKind int

const (
	atomAssertion entryKind = iota
	consequenceAssertion
	conceptCommitment
	inferenceCommitment
)

type entry struct {
	kind       entryKind
	atom       sentence.Sentence
	gamma      sentence.Set
	delta      sentence.Set
	role       string
	individual string
	concept    string
	consequent sentence.Set
}

// Store accumulates labelled contributions and compiles them into a
// base.MaterialBase on demand.
type Store struct {
	mode    sentence.Mode
	entries map[string]entry
	order   []string
}

// New builds an empty commitment store for the given parsing mode.
func New(mode sentence.Mode) *Store {
	return &Store{mode: mode, entries: make(map[string]entry)}
}

// AssertAtom labels a as belonging to the compiled base's language.
func (s *Store) AssertAtom(label string, a sentence.Sentence) error {
	if !a.IsAtomic() {
		return &nmmserr.ValidationError{Context: "commitment.AssertAtom", Sentence: a, Reason: a.String() + " is not atomic"}
	}
	s.put(label, entry{kind: atomAssertion, atom: a})
	return nil
}

// AssertConsequence labels (gamma, delta) as a base consequence in the
// compiled base.
func (s *Store) AssertConsequence(label string, gamma, delta sentence.Set) error {
	if bad, ok := sentence.FirstNonAtomic(gamma); ok {
		return &nmmserr.ValidationError{Context: "commitment.AssertConsequence", Sentence: bad, Reason: "consequence sides must be atomic"}
	}
	if bad, ok := sentence.FirstNonAtomic(delta); ok {
		return &nmmserr.ValidationError{Context: "commitment.AssertConsequence", Sentence: bad, Reason: "consequence sides must be atomic"}
	}
	s.put(label, entry{kind: consequenceAssertion, gamma: gamma, delta: delta})
	return nil
}

// CommitConceptSchema labels a universal concept-schema commitment
// (§4.4.2): {R(a,b)} |~ {C(b)} for every b triggered in the queried Γ.
func (s *Store) CommitConceptSchema(label, role, individual, concept string) {
	s.put(label, entry{kind: conceptCommitment, role: role, individual: individual, concept: concept})
}

// CommitInferenceSchema labels a universal inference-schema commitment
// (§4.4.2): {R(a,b), C(b)} |~ consequent for every witness b in context.
func (s *Store) CommitInferenceSchema(label, role, individual, concept string, consequent sentence.Set) {
	s.put(label, entry{kind: inferenceCommitment, role: role, individual: individual, concept: concept, consequent: consequent})
}

func (s *Store) put(label string, e entry) {
	if _, exists := s.entries[label]; !exists {
		s.order = append(s.order, label)
	}
	s.entries[label] = e
}

// Retract removes label's contribution entirely. Reports whether label was
// present.
func (s *Store) Retract(label string) bool {
	if _, ok := s.entries[label]; !ok {
		return false
	}
	delete(s.entries, label)
	for i, l := range s.order {
		if l == label {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Labels returns the currently committed labels, in commitment order.
func (s *Store) Labels() []string {
	return append([]string(nil), s.order...)
}

// Compile builds a fresh MaterialBase from every currently-committed entry.
// Compilation is pure bookkeeping (§4.4.4): calling it twice without
// mutating the store yields two independently-owned, equivalent bases.
func (s *Store) Compile() (*base.MaterialBase, error) {
	b := base.New(s.mode)
	for _, label := range s.order {
		e := s.entries[label]
		switch e.kind {
		case atomAssertion:
			if err := b.AddAtom(e.atom); err != nil {
				return nil, err
			}
		case consequenceAssertion:
			if err := b.AddConsequence(e.gamma, e.delta); err != nil {
				return nil, err
			}
		case conceptCommitment:
			b.AddConceptSchema(e.role, e.individual, e.concept)
		case inferenceCommitment:
			b.AddInferenceSchema(e.role, e.individual, e.concept, e.consequent)
		}
	}
	return b, nil
}
