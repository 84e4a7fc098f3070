package sentence

import (
	"fmt"
	"sort"
)

// FirstNonAtomic returns the first (in sorted order) non-atomic member of s,
// or ok == false if every member is atomic — the check the material base
// performs at its boundary (I1: "every sentence mentioned in language or in
// any consequence is atomic"). Returning the offending sentence itself,
// rather than a bare bool, lets call sites report which sentence violated
// I1 instead of just that the set as a whole did.
func FirstNonAtomic(s Set) (Sentence, bool) {
	for _, x := range s.Sorted() {
		if !x.IsAtomic() {
			return x, true
		}
	}
	return nil, false
}

// FindRoleTriggers returns the individuals b such that role(subject, b) is
// present in gamma, sorted for determinism. This is the "trigger" set that
// [L∀R.C], [L∃R.C], [R∃R.C] (§4.4.3) and schema matching consult; [R∀R.C]
// introduces an eigenvariable instead.
func FindRoleTriggers(gamma Set, role, subject string) []string {
	var triggers []string
	for _, s := range gamma.Sorted() {
		if r, ok := s.(RoleAtom); ok && r.Role == role && r.Subject == subject {
			triggers = append(triggers, r.Object)
		}
	}
	return triggers
}

// CollectIndividuals extracts every individual name mentioned in sentences,
// used to pick eigenvariable/witness names that are guaranteed fresh.
func CollectIndividuals(sentences Set) map[string]struct{} {
	individuals := make(map[string]struct{})
	for _, s := range sentences.Sorted() {
		switch t := s.(type) {
		case ConceptAtom:
			individuals[t.Individual] = struct{}{}
		case RoleAtom:
			individuals[t.Subject] = struct{}{}
			individuals[t.Object] = struct{}{}
		case AllRestrict:
			individuals[t.Individual] = struct{}{}
		case SomeRestrict:
			individuals[t.Individual] = struct{}{}
		}
	}
	return individuals
}

// FreshIndividual returns canonical if it doesn't already appear in used,
// and otherwise appends an incrementing numeric suffix until it finds a name
// that doesn't — the same collision fallback as the original's
// fresh_individual(used, prefix=...).
func FreshIndividual(used map[string]struct{}, canonical string) string {
	if _, taken := used[canonical]; !taken {
		return canonical
	}
	for i := 0; ; i++ {
		candidate := fmt.Sprintf("%s_%d", canonical, i)
		if _, taken := used[candidate]; !taken {
			return candidate
		}
	}
}

// ConceptLabel returns the set of concept names asserted of individual
// within sentences — used by [R∃R.C]'s concept-label subset blocking
// (§4.4.3, OQ-2).
func ConceptLabel(individual string, sentences Set) map[string]struct{} {
	labels := make(map[string]struct{})
	for _, s := range sentences.Sorted() {
		if c, ok := s.(ConceptAtom); ok && c.Individual == individual {
			labels[c.Concept] = struct{}{}
		}
	}
	return labels
}

// isSubset reports whether a is a subset of b.
func isSubset(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// FindBlockingIndividual returns an existing individual (other than fresh)
// whose concept label is a superset of fresh's concept label in the current
// context, or "" if none blocks it.
func FindBlockingIndividual(fresh string, gamma, delta Set, used map[string]struct{}) string {
	all := gamma.Union(delta)
	freshLabel := ConceptLabel(fresh, all)

	names := make([]string, 0, len(used))
	for c := range used {
		names = append(names, c)
	}
	sort.Strings(names)

	for _, c := range names {
		if c == fresh {
			continue
		}
		if isSubset(freshLabel, ConceptLabel(c, all)) {
			return c
		}
	}
	return ""
}
