package reasoner

import "github.com/nmms-lang/nmms/pkg/sentence"

// tryLeftRules iterates the complex sentences of gamma in ascending string
// order, attempting each one's left rule until one succeeds (§4.3.2 rule 4).
func (r *Reasoner) tryLeftRules(gamma, delta sentence.Set, depth int) bool {
	for _, s := range gamma.Sorted() {
		if !sentence.IsComplex(s) {
			continue
		}
		if r.tryLeftRule(s, gamma, delta, depth) {
			return true
		}
	}
	return false
}

func (r *Reasoner) tryLeftRule(s sentence.Sentence, gamma, delta sentence.Set, depth int) bool {
	switch t := s.(type) {
	case sentence.Not:
		return r.leftNot(t, gamma, delta, depth)
	case sentence.And:
		return r.leftAnd(t, gamma, delta, depth)
	case sentence.Or:
		return r.leftOr(t, gamma, delta, depth)
	case sentence.Implies:
		return r.leftImplies(t, gamma, delta, depth)
	case sentence.AllRestrict:
		return r.leftAllRestrict(t, gamma, delta, depth)
	case sentence.SomeRestrict:
		return r.leftSomeRestrict(t, gamma, delta, depth)
	default:
		return false
	}
}

// leftNot: [L¬] on ~A in Γ. One subgoal: (Γ\{~A}, Δ ∪ {A}).
func (r *Reasoner) leftNot(t sentence.Not, gamma, delta sentence.Set, depth int) bool {
	r.emit(depth, "[L¬] on %s", t)
	newGamma := gamma.Remove(t)
	newDelta := delta.Add(t.Sub)
	return r.prove(newGamma, newDelta, depth+1)
}

// leftAnd: [L∧] on A & B in Γ. One subgoal: (Γ\{A&B} ∪ {A,B}, Δ). Multiplicative.
func (r *Reasoner) leftAnd(t sentence.And, gamma, delta sentence.Set, depth int) bool {
	r.emit(depth, "[L∧] on %s", t)
	newGamma := gamma.Remove(t).Add(t.Left).Add(t.Right)
	return r.prove(newGamma, delta, depth+1)
}

// leftOr: [L∨] on A | B in Γ. Three subgoals, all must succeed.
func (r *Reasoner) leftOr(t sentence.Or, gamma, delta sentence.Set, depth int) bool {
	r.emit(depth, "[L∨] on %s", t)
	base := gamma.Remove(t)
	g1 := base.Add(t.Left)
	g2 := base.Add(t.Right)
	g3 := base.Add(t.Left).Add(t.Right)
	return r.prove(g1, delta, depth+1) &&
		r.prove(g2, delta, depth+1) &&
		r.prove(g3, delta, depth+1)
}

// leftImplies: [L→] on A → B in Γ. Three subgoals, all must succeed.
func (r *Reasoner) leftImplies(t sentence.Implies, gamma, delta sentence.Set, depth int) bool {
	r.emit(depth, "[L→] on %s", t)
	base := gamma.Remove(t)
	sub1G, sub1D := base, delta.Add(t.Left)
	sub2G, sub2D := base.Add(t.Right), delta
	sub3G, sub3D := base.Add(t.Right), delta.Add(t.Left)
	return r.prove(sub1G, sub1D, depth+1) &&
		r.prove(sub2G, sub2D, depth+1) &&
		r.prove(sub3G, sub3D, depth+1)
}

// leftAllRestrict: [L∀R.C] adjunction on ALL R.C(a) in Γ. One subgoal, adding
// C(b) for every trigger b. Inert (succeeds iff the remainder does) when
// there are no triggers (§OQ-1: adjunction, not the power-symjunction
// pattern that mirrors [L∃R.C]).
func (r *Reasoner) leftAllRestrict(t sentence.AllRestrict, gamma, delta sentence.Set, depth int) bool {
	r.emit(depth, "[L∀R.C] on %s", t)
	triggers := sentence.FindRoleTriggers(gamma, t.Role, t.Individual)
	newGamma := gamma.Remove(t)
	for _, b := range triggers {
		newGamma = newGamma.Add(sentence.ConceptAtom{Concept: t.Concept, Individual: b})
	}
	return r.prove(newGamma, delta, depth+1)
}

// leftSomeRestrict: [L∃R.C] Ketonen on SOME R.C(a) in Γ. Enumerates every
// non-empty subset of {C(b) : b ∈ triggers}; every subgoal must succeed.
// Inert when triggers is empty.
func (r *Reasoner) leftSomeRestrict(t sentence.SomeRestrict, gamma, delta sentence.Set, depth int) bool {
	r.emit(depth, "[L∃R.C] on %s", t)
	triggers := sentence.FindRoleTriggers(gamma, t.Role, t.Individual)
	base := gamma.Remove(t)

	if len(triggers) == 0 {
		return r.prove(base, delta, depth+1)
	}

	concepts := make([]sentence.Sentence, len(triggers))
	for i, b := range triggers {
		concepts[i] = sentence.ConceptAtom{Concept: t.Concept, Individual: b}
	}

	for _, subset := range nonEmptySubsetsBySizeThenLex(concepts) {
		g := base
		for _, c := range subset {
			g = g.Add(c)
		}
		if !r.prove(g, delta, depth+1) {
			return false
		}
	}
	return true
}
