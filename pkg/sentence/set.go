package sentence

import (
	"sort"
	"strings"
)

// Set is an immutable value type over Sentences, keyed by their canonical
// string form. Mutating operations (Add, Remove, Union) return a new Set;
// the receiver is left untouched. This is what the specification calls a
// "hashable immutable set value type" (§9): Sequents and reasoner cache keys
// are built directly out of Set.Key, with no separate hashing step.
type Set struct {
	m map[string]Sentence
}

// EmptySet is the empty Set. Its zero value is usable directly.
var EmptySet = Set{}

// NewSet builds a Set from the given sentences, deduplicating by canonical
// string form.
func NewSet(items ...Sentence) Set {
	if len(items) == 0 {
		return EmptySet
	}
	m := make(map[string]Sentence, len(items))
	for _, s := range items {
		m[s.String()] = s
	}
	return Set{m: m}
}

// Len returns the number of distinct sentences in the set.
func (s Set) Len() int {
	return len(s.m)
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return len(s.m) == 0
}

// Contains reports whether x is a member of s.
func (s Set) Contains(x Sentence) bool {
	if s.m == nil {
		return false
	}
	_, ok := s.m[x.String()]
	return ok
}

// Add returns a new Set with x inserted.
func (s Set) Add(x Sentence) Set {
	m := make(map[string]Sentence, len(s.m)+1)
	for k, v := range s.m {
		m[k] = v
	}
	m[x.String()] = x
	return Set{m: m}
}

// Remove returns a new Set with x removed, if present.
func (s Set) Remove(x Sentence) Set {
	if !s.Contains(x) {
		return s
	}
	m := make(map[string]Sentence, len(s.m))
	for k, v := range s.m {
		if k != x.String() {
			m[k] = v
		}
	}
	return Set{m: m}
}

// Union returns a new Set containing every member of s and other.
func (s Set) Union(other Set) Set {
	if other.IsEmpty() {
		return s
	}
	m := make(map[string]Sentence, len(s.m)+len(other.m))
	for k, v := range s.m {
		m[k] = v
	}
	for k, v := range other.m {
		m[k] = v
	}
	return Set{m: m}
}

// Intersects reports whether s and other share at least one member — the
// test behind the Containment axiom (Ax1).
func (s Set) Intersects(other Set) bool {
	small, big := s, other
	if len(big.m) < len(small.m) {
		small, big = big, small
	}
	for k := range small.m {
		if _, ok := big.m[k]; ok {
			return true
		}
	}
	return false
}

// Equal reports whether s and other have exactly the same members.
func (s Set) Equal(other Set) bool {
	if len(s.m) != len(other.m) {
		return false
	}
	for k := range s.m {
		if _, ok := other.m[k]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the set's members ordered by ascending canonical string —
// the deterministic order the search engine iterates rule candidates in
// (§4.3.2 rule 4).
func (s Set) Sorted() []Sentence {
	out := make([]Sentence, 0, len(s.m))
	for _, v := range s.m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Key returns the canonical string identifying this set's contents,
// independent of insertion order. Equal sets produce equal keys.
func (s Set) Key() string {
	sorted := s.Sorted()
	parts := make([]string, len(sorted))
	for i, x := range sorted {
		parts[i] = x.String()
	}
	return strings.Join(parts, "\x1f")
}

// String renders the set the way the reference implementation formats
// sequent sides for trace messages: "∅" when empty, else a sorted,
// comma-joined list.
func (s Set) String() string {
	if s.IsEmpty() {
		return "∅"
	}
	sorted := s.Sorted()
	parts := make([]string, len(sorted))
	for i, x := range sorted {
		parts[i] = x.String()
	}
	return strings.Join(parts, ", ")
}

// FromSlice builds a Set from a slice of sentences (as returned by the
// parser's list-parsing functions).
func FromSlice(items []Sentence) Set {
	return NewSet(items...)
}
