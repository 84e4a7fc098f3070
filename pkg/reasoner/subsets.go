package reasoner

import (
	"sort"

	"github.com/nmms-lang/nmms/pkg/sentence"
)

// nonEmptySubsetsBySizeThenLex enumerates every non-empty subset of items,
// ordered by ascending size then lexicographic order of member strings
// (§4.3.4's ordering guarantee for [L∃R.C] subset enumeration). items must
// already be duplicate-free.
func nonEmptySubsetsBySizeThenLex(items []sentence.Sentence) [][]sentence.Sentence {
	sorted := append([]sentence.Sentence(nil), items...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	n := len(sorted)
	var subsets [][]sentence.Sentence
	for mask := 1; mask < (1 << n); mask++ {
		var subset []sentence.Sentence
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, sorted[i])
			}
		}
		subsets = append(subsets, subset)
	}

	sort.SliceStable(subsets, func(i, j int) bool {
		if len(subsets[i]) != len(subsets[j]) {
			return len(subsets[i]) < len(subsets[j])
		}
		return lexLess(subsets[i], subsets[j])
	})
	return subsets
}

func lexLess(a, b []sentence.Sentence) bool {
	for i := range a {
		if a[i].String() != b[i].String() {
			return a[i].String() < b[i].String()
		}
	}
	return false
}
