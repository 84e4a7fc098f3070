package commitment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmms-lang/nmms/internal/commitment"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

func mustAtom(t *testing.T, raw string, mode sentence.Mode) sentence.Sentence {
	s, err := sentence.Parse(raw, mode)
	require.NoError(t, err)
	return s
}

func TestCompileAppliesAssertionsInOrder(t *testing.T) {
	store := commitment.New(sentence.Propositional)
	require.NoError(t, store.AssertAtom("fact1", mustAtom(t, "A", sentence.Propositional)))
	require.NoError(t, store.AssertConsequence("fact2",
		sentence.FromSlice([]sentence.Sentence{mustAtom(t, "A", sentence.Propositional)}),
		sentence.FromSlice([]sentence.Sentence{mustAtom(t, "B", sentence.Propositional)}),
	))

	b, err := store.Compile()
	require.NoError(t, err)
	require.True(t, b.IsAxiom(
		sentence.FromSlice([]sentence.Sentence{mustAtom(t, "A", sentence.Propositional)}),
		sentence.FromSlice([]sentence.Sentence{mustAtom(t, "B", sentence.Propositional)}),
	))
}

func TestRetractRemovesExactlyItsContribution(t *testing.T) {
	store := commitment.New(sentence.Propositional)
	require.NoError(t, store.AssertConsequence("fact1",
		sentence.FromSlice([]sentence.Sentence{mustAtom(t, "A", sentence.Propositional)}),
		sentence.FromSlice([]sentence.Sentence{mustAtom(t, "B", sentence.Propositional)}),
	))
	require.NoError(t, store.AssertConsequence("fact2",
		sentence.FromSlice([]sentence.Sentence{mustAtom(t, "C", sentence.Propositional)}),
		sentence.FromSlice([]sentence.Sentence{mustAtom(t, "D", sentence.Propositional)}),
	))

	require.True(t, store.Retract("fact1"))
	require.False(t, store.Retract("fact1"))

	b, err := store.Compile()
	require.NoError(t, err)
	require.False(t, b.IsAxiom(
		sentence.FromSlice([]sentence.Sentence{mustAtom(t, "A", sentence.Propositional)}),
		sentence.FromSlice([]sentence.Sentence{mustAtom(t, "B", sentence.Propositional)}),
	))
	require.True(t, b.IsAxiom(
		sentence.FromSlice([]sentence.Sentence{mustAtom(t, "C", sentence.Propositional)}),
		sentence.FromSlice([]sentence.Sentence{mustAtom(t, "D", sentence.Propositional)}),
	))
}

func TestAssertAtomRejectsComplexSentence(t *testing.T) {
	store := commitment.New(sentence.Propositional)
	complex := mustAtom(t, "A & B", sentence.Propositional)
	require.Error(t, store.AssertAtom("bad", complex))
}

func TestCommitConceptSchemaAppliesUnderRQ(t *testing.T) {
	store := commitment.New(sentence.RQ)
	store.CommitConceptSchema("c1", "hasChild", "a", "Doctor")
	require.NoError(t, store.AssertAtom("r1", mustAtom(t, "hasChild(a,b)", sentence.RQ)))

	b, err := store.Compile()
	require.NoError(t, err)
	gamma := sentence.FromSlice([]sentence.Sentence{mustAtom(t, "hasChild(a,b)", sentence.RQ)})
	delta := sentence.FromSlice([]sentence.Sentence{mustAtom(t, "Doctor(b)", sentence.RQ)})
	require.True(t, b.IsAxiom(gamma, delta))
}

func TestLabelsReturnsCommitmentOrder(t *testing.T) {
	store := commitment.New(sentence.Propositional)
	require.NoError(t, store.AssertAtom("first", mustAtom(t, "A", sentence.Propositional)))
	require.NoError(t, store.AssertAtom("second", mustAtom(t, "B", sentence.Propositional)))
	require.Equal(t, []string{"first", "second"}, store.Labels())
}
