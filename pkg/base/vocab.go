package base

import "github.com/nmms-lang/nmms/pkg/sentence"

// Individuals, Concepts, and Roles are RQ vocabulary sets projected from the
// language's atom shapes (§3, I3) — computed on demand rather than
// maintained as separate mutable state, so they can never drift out of sync
// with language.

// Individuals returns every individual name mentioned in the language.
func (b *MaterialBase) Individuals() map[string]struct{} {
	out := make(map[string]struct{})
	for _, a := range b.language.Sorted() {
		switch t := a.(type) {
		case sentence.ConceptAtom:
			out[t.Individual] = struct{}{}
		case sentence.RoleAtom:
			out[t.Subject] = struct{}{}
			out[t.Object] = struct{}{}
		}
	}
	return out
}

// Concepts returns every concept name mentioned in the language.
func (b *MaterialBase) Concepts() map[string]struct{} {
	out := make(map[string]struct{})
	for _, a := range b.language.Sorted() {
		if c, ok := a.(sentence.ConceptAtom); ok {
			out[c.Concept] = struct{}{}
		}
	}
	return out
}

// Roles returns every role name mentioned in the language.
func (b *MaterialBase) Roles() map[string]struct{} {
	out := make(map[string]struct{})
	for _, a := range b.language.Sorted() {
		if r, ok := a.(sentence.RoleAtom); ok {
			out[r.Role] = struct{}{}
		}
	}
	return out
}
