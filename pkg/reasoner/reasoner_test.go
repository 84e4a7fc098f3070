package reasoner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmms-lang/nmms/pkg/base"
	"github.com/nmms-lang/nmms/pkg/sentence"
)

func atom(name string) sentence.Sentence { return sentence.Atom{Name: name} }

func mustParse(t *testing.T, in string, mode sentence.Mode) sentence.Sentence {
	t.Helper()
	s, err := sentence.Parse(in, mode)
	require.NoError(t, err)
	return s
}

// Scenario 1: {A}⇒{B} in the base, query {A}⇒{B} is derivable.
func TestScenarioBaseConsequenceDerivable(t *testing.T) {
	b := base.New(sentence.Propositional)
	require.NoError(t, b.AddConsequence(sentence.NewSet(atom("A")), sentence.NewSet(atom("B"))))

	r := New(b)
	res := r.Derives(sentence.NewSet(atom("A")), sentence.NewSet(atom("B")))
	require.True(t, res.Derivable)
}

// Scenario 2 / P4 No-Cut: {A}⇒{B}, {B}⇒{C} in the base; {A}⇒{C} not derivable.
func TestScenarioNoCut(t *testing.T) {
	b := base.New(sentence.Propositional)
	require.NoError(t, b.AddConsequence(sentence.NewSet(atom("A")), sentence.NewSet(atom("B"))))
	require.NoError(t, b.AddConsequence(sentence.NewSet(atom("B")), sentence.NewSet(atom("C"))))

	r := New(b)
	res := r.Derives(sentence.NewSet(atom("A")), sentence.NewSet(atom("C")))
	require.False(t, res.Derivable)
}

// Scenario 3 / P3 No-Weakening: {A}⇒{B} in the base; {A,X}⇒{B} not derivable
// for fresh X.
func TestScenarioNoWeakening(t *testing.T) {
	b := base.New(sentence.Propositional)
	require.NoError(t, b.AddConsequence(sentence.NewSet(atom("A")), sentence.NewSet(atom("B"))))

	r := New(b)
	res := r.Derives(sentence.NewSet(atom("A"), atom("X")), sentence.NewSet(atom("B")))
	require.False(t, res.Derivable)
}

// Scenario 4 / P5 supraclassicality probes.
func TestSupraclassicalityProbes(t *testing.T) {
	b := base.New(sentence.Propositional)
	r := New(b)

	cases := []struct {
		name string
		ant  string
		con  string
	}{
		{"excluded middle", "", "A | ~A"},
		{"double negation", "~~A", "A"},
		{"contradiction", "A, ~A", ""},
		{"identity implication", "", "A -> A"},
		{"modus ponens", "A, A -> B", "B"},
		{"implication linearity", "", "(A -> B) | (B -> A)"},
	}
	for _, tc := range cases {
		ant, err := sentence.ParseList(tc.ant, sentence.Propositional)
		require.NoError(t, err, tc.name)
		con, err := sentence.ParseList(tc.con, sentence.Propositional)
		require.NoError(t, err, tc.name)
		res := r.Derives(sentence.FromSlice(ant), sentence.FromSlice(con))
		require.True(t, res.Derivable, tc.name)
	}
}

// Scenario 5: an absent third consequence keeps the query underivable.
func TestScenarioAbsentConsequenceNotDerivable(t *testing.T) {
	b := base.New(sentence.Propositional)
	require.NoError(t, b.AddConsequence(sentence.NewSet(atom("rain")), sentence.NewSet(atom("wet"))))

	r := New(b)
	res := r.Derives(sentence.NewSet(atom("rain"), atom("covered")), sentence.NewSet(atom("wet")))
	require.False(t, res.Derivable)
}

// Scenario 6 (RQ): [L∀R.C] derives PD(a) from ALL hasChild.Doctor(a),
// hasChild(a,b) given the base consequence {hasChild(a,b), Doctor(b)}⇒{PD(a)}.
func TestScenarioLeftAllRestrict(t *testing.T) {
	b := base.New(sentence.RQ)
	require.NoError(t, b.AddConsequence(
		sentence.NewSet(
			sentence.RoleAtom{Role: "hasChild", Subject: "a", Object: "b"},
			sentence.ConceptAtom{Concept: "Doctor", Individual: "b"},
		),
		sentence.NewSet(sentence.ConceptAtom{Concept: "PD", Individual: "a"}),
	))

	r := New(b)
	gamma := sentence.NewSet(
		mustParse(t, "ALL hasChild.Doctor(a)", sentence.RQ),
		sentence.RoleAtom{Role: "hasChild", Subject: "a", Object: "b"},
	)
	delta := sentence.NewSet(sentence.ConceptAtom{Concept: "PD", Individual: "a"})
	res := r.Derives(gamma, delta)
	require.True(t, res.Derivable)

	found := false
	for _, line := range res.Trace {
		if line == "[L∀R.C] on ALL hasChild.Doctor(a)" {
			found = true
		}
	}
	require.True(t, found, "expected [L∀R.C] trace entry, got %v", res.Trace)
}

// Scenario 7 (RQ): [R∃R.C] known-witness path.
func TestScenarioRightSomeRestrictKnownWitness(t *testing.T) {
	b := base.New(sentence.RQ)
	require.NoError(t, b.AddConsequence(
		sentence.NewSet(
			sentence.RoleAtom{Role: "hasChild", Subject: "a", Object: "c"},
			sentence.ConceptAtom{Concept: "Doctor", Individual: "c"},
		),
		sentence.NewSet(sentence.ConceptAtom{Concept: "PD", Individual: "a"}),
	))

	r := New(b)
	gamma := sentence.NewSet(
		sentence.RoleAtom{Role: "hasChild", Subject: "a", Object: "c"},
		sentence.ConceptAtom{Concept: "Doctor", Individual: "c"},
	)
	delta := sentence.NewSet(mustParse(t, "SOME hasChild.Doctor(a)", sentence.RQ))
	res := r.Derives(gamma, delta)
	require.True(t, res.Derivable)
}

// Scenario 8 (RQ): [R∃R.C]'s fresh-witness strategy must not reuse a
// canonical name that already denotes some unrelated individual in Γ∪Δ —
// mirroring the original's `if canonical_fresh not in used:` freshness gate.
// If the rule treated the colliding name as fresh anyway, it would add
// Doctor(_w_hasChild_Doctor_a) to Δ, which is already asserted in Γ,
// making the goal derivable by containment alone — unsound, since nothing
// here actually witnesses a hasChild-Doctor for a.
func TestScenarioRightSomeRestrictCanonicalNameCollision(t *testing.T) {
	b := base.New(sentence.RQ)
	r := New(b)

	collidingName := "_w_hasChild_Doctor_a"
	gamma := sentence.NewSet(
		sentence.ConceptAtom{Concept: "Doctor", Individual: collidingName},
	)
	delta := sentence.NewSet(mustParse(t, "SOME hasChild.Doctor(a)", sentence.RQ))

	res := r.Derives(gamma, delta)
	require.False(t, res.Derivable, "canonical witness name collides with an existing individual; must not be reused as fresh")
}

// P1 Containment.
func TestContainment(t *testing.T) {
	b := base.New(sentence.Propositional)
	r := New(b)
	res := r.Derives(sentence.NewSet(atom("A")), sentence.NewSet(atom("A"), atom("B")))
	require.True(t, res.Derivable)
}

// P6 Conservative extension: for atomic Γ,Δ, derives == is_axiom directly.
func TestConservativeExtension(t *testing.T) {
	b := base.New(sentence.Propositional)
	require.NoError(t, b.AddConsequence(sentence.NewSet(atom("A")), sentence.NewSet(atom("B"))))
	r := New(b)

	pairs := []struct{ g, d sentence.Set }{
		{sentence.NewSet(atom("A")), sentence.NewSet(atom("B"))},
		{sentence.NewSet(atom("A")), sentence.NewSet(atom("C"))},
		{sentence.NewSet(atom("Z")), sentence.NewSet(atom("Z"))},
	}
	for _, p := range pairs {
		require.Equal(t, b.IsAxiom(p.g, p.d), r.Query(p.g, p.d))
	}
}

// P7 (DD) explicitation biconditional.
func TestExplicitationDD(t *testing.T) {
	b := base.New(sentence.Propositional)
	r := New(b)

	lhs := r.Query(sentence.EmptySet, sentence.NewSet(mustParse(t, "A -> B", sentence.Propositional)))
	rhs := r.Query(sentence.NewSet(atom("A")), sentence.NewSet(atom("B")))
	require.Equal(t, lhs, rhs)
}

// P8 Idempotence: two calls over the same base agree on derivability and trace.
func TestIdempotence(t *testing.T) {
	b := base.New(sentence.Propositional)
	require.NoError(t, b.AddConsequence(sentence.NewSet(atom("A")), sentence.NewSet(atom("B"))))
	r := New(b)

	gamma := sentence.NewSet(mustParse(t, "A & C", sentence.Propositional))
	delta := sentence.NewSet(atom("B"))

	res1 := r.Derives(gamma, delta)
	res2 := r.Derives(gamma, delta)
	require.Equal(t, res1.Derivable, res2.Derivable)
	require.Equal(t, res1.Trace, res2.Trace)
}

// P10 Determinism: a fresh reasoner over the same base reproduces the trace.
func TestDeterminism(t *testing.T) {
	b := base.New(sentence.Propositional)
	require.NoError(t, b.AddConsequence(sentence.NewSet(atom("A")), sentence.NewSet(atom("B"))))

	gamma := sentence.NewSet(mustParse(t, "A | C", sentence.Propositional))
	delta := sentence.NewSet(atom("B"))

	res1 := New(b).Derives(gamma, delta)
	res2 := New(b).Derives(gamma, delta)
	require.Equal(t, res1.Trace, res2.Trace)
}

func TestDepthLimitProducesTraceEntryAndFalse(t *testing.T) {
	b := base.New(sentence.Propositional)
	r := New(b, WithMaxDepth(1))

	gamma := sentence.NewSet(mustParse(t, "A & B & C", sentence.Propositional))
	res := r.Derives(gamma, sentence.NewSet(atom("Z")))
	require.False(t, res.Derivable)

	found := false
	for _, line := range res.Trace {
		if strings.HasSuffix(line, "DEPTH LIMIT") {
			found = true
		}
	}
	require.True(t, found, "expected a DEPTH LIMIT trace entry, got %v", res.Trace)
}

func TestCacheHitsCounted(t *testing.T) {
	b := base.New(sentence.Propositional)
	r := New(b)

	// [R∧]'s three subgoals over (A|~A) & (A|~A) collapse to the exact
	// same sequent (Γ={}, Δ={A|~A}) in all three branches, since Left and
	// Right are structurally identical — the second and third branches
	// must hit the cache rather than recompute.
	delta := sentence.NewSet(mustParse(t, "(A | ~A) & (A | ~A)", sentence.Propositional))
	res := r.Derives(sentence.EmptySet, delta)
	require.True(t, res.Derivable)
	require.GreaterOrEqual(t, res.CacheHits, 2)
}
