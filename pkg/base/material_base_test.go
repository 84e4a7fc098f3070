package base

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/nmms-lang/nmms/internal/nmmserr"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

// setComparer lets cmp.Diff compare sentence.Set values by their exported
// equality contract (canonical key) instead of panicking on the set's
// unexported member map.
var setComparer = cmp.Comparer(func(a, b sentence.Set) bool { return a.Key() == b.Key() })

func atom(name string) sentence.Sentence { return sentence.Atom{Name: name} }

func TestAddAtomRejectsComplex(t *testing.T) {
	b := New(sentence.Propositional)
	complex := sentence.Not{Sub: atom("A")}
	err := b.AddAtom(complex)
	require.Error(t, err)
	var verr *nmmserr.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, complex, verr.Sentence)
	require.True(t, b.Language().IsEmpty())
}

func TestAddConsequenceInsertsLanguage(t *testing.T) {
	b := New(sentence.Propositional)
	err := b.AddConsequence(sentence.NewSet(atom("A")), sentence.NewSet(atom("B")))
	require.NoError(t, err)
	require.True(t, b.Language().Contains(atom("A")))
	require.True(t, b.Language().Contains(atom("B")))
	require.Len(t, b.Consequences(), 1)
}

func TestAddConsequenceRejectsComplex(t *testing.T) {
	b := New(sentence.Propositional)
	bad := sentence.Not{Sub: atom("A")}
	err := b.AddConsequence(sentence.NewSet(bad), sentence.NewSet(atom("B")))
	require.Error(t, err)
	var verr *nmmserr.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, sentence.Sentence(bad), verr.Sentence)
}

func TestIsAxiomContainment(t *testing.T) {
	b := New(sentence.Propositional)
	require.True(t, b.IsAxiom(sentence.NewSet(atom("A")), sentence.NewSet(atom("A"), atom("B"))))
}

func TestIsAxiomExplicitConsequenceExactMatchOnly(t *testing.T) {
	b := New(sentence.Propositional)
	require.NoError(t, b.AddConsequence(sentence.NewSet(atom("A")), sentence.NewSet(atom("B"))))

	require.True(t, b.IsAxiom(sentence.NewSet(atom("A")), sentence.NewSet(atom("B"))))
	// No-weakening: adding a fresh atom to gamma must not still match.
	require.False(t, b.IsAxiom(sentence.NewSet(atom("A"), atom("X")), sentence.NewSet(atom("B"))))
	// No superset/subset play on the consequent side either.
	require.False(t, b.IsAxiom(sentence.NewSet(atom("A")), sentence.NewSet(atom("B"), atom("C"))))
}

func TestIsAxiomConceptSchema(t *testing.T) {
	b := New(sentence.RQ)
	b.AddConceptSchema("hasChild", "a", "Doctor")

	gamma := sentence.NewSet(sentence.RoleAtom{Role: "hasChild", Subject: "a", Object: "b"})
	delta := sentence.NewSet(sentence.ConceptAtom{Concept: "Doctor", Individual: "b"})
	require.True(t, b.IsAxiom(gamma, delta))

	// Wrong witness individual on the consequent side must not match.
	wrongDelta := sentence.NewSet(sentence.ConceptAtom{Concept: "Doctor", Individual: "c"})
	require.False(t, b.IsAxiom(gamma, wrongDelta))
}

func TestIsAxiomInferenceSchema(t *testing.T) {
	b := New(sentence.RQ)
	consequent := sentence.NewSet(sentence.ConceptAtom{Concept: "PD", Individual: "a"})
	b.AddInferenceSchema("hasChild", "a", "Doctor", consequent)

	gamma := sentence.NewSet(
		sentence.RoleAtom{Role: "hasChild", Subject: "a", Object: "c"},
		sentence.ConceptAtom{Concept: "Doctor", Individual: "c"},
	)
	require.True(t, b.IsAxiom(gamma, consequent))
}

func TestJSONRoundTrip(t *testing.T) {
	b := New(sentence.Propositional)
	require.NoError(t, b.AddAtom(atom("rain")))
	require.NoError(t, b.AddConsequence(sentence.NewSet(atom("rain")), sentence.NewSet(atom("wet"))))

	data, err := b.ToDict()
	require.NoError(t, err)

	b2, err := FromDict(data, sentence.Propositional)
	require.NoError(t, err)

	require.True(t, b.Language().Equal(b2.Language()))
	if diff := cmp.Diff(b.Consequences(), b2.Consequences(), setComparer); diff != "" {
		t.Errorf("consequences changed across a round trip (-want +got):\n%s", diff)
	}
	require.True(t, b2.IsAxiom(sentence.NewSet(atom("rain")), sentence.NewSet(atom("wet"))))
}

func TestFromDictRejectsNonAtomic(t *testing.T) {
	_, err := FromDict([]byte(`{"language": ["A & B"], "consequences": []}`), sentence.Propositional)
	require.Error(t, err)
}
