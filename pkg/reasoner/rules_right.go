package reasoner

import (
	"fmt"

	"github.com/nmms-lang/nmms/pkg/sentence"
)

// tryRightRules iterates the complex sentences of delta in ascending string
// order, attempting each one's right rule until one succeeds.
func (r *Reasoner) tryRightRules(gamma, delta sentence.Set, depth int) bool {
	for _, s := range delta.Sorted() {
		if !sentence.IsComplex(s) {
			continue
		}
		if r.tryRightRule(s, gamma, delta, depth) {
			return true
		}
	}
	return false
}

func (r *Reasoner) tryRightRule(s sentence.Sentence, gamma, delta sentence.Set, depth int) bool {
	switch t := s.(type) {
	case sentence.Not:
		return r.rightNot(t, gamma, delta, depth)
	case sentence.Or:
		return r.rightOr(t, gamma, delta, depth)
	case sentence.Implies:
		return r.rightImplies(t, gamma, delta, depth)
	case sentence.And:
		return r.rightAnd(t, gamma, delta, depth)
	case sentence.AllRestrict:
		return r.rightAllRestrict(t, gamma, delta, depth)
	case sentence.SomeRestrict:
		return r.rightSomeRestrict(t, gamma, delta, depth)
	default:
		return false
	}
}

// rightNot: [R¬] on ~A in Δ. One subgoal: (Γ ∪ {A}, Δ\{~A}).
func (r *Reasoner) rightNot(t sentence.Not, gamma, delta sentence.Set, depth int) bool {
	r.emit(depth, "[R¬] on %s", t)
	newGamma := gamma.Add(t.Sub)
	newDelta := delta.Remove(t)
	return r.prove(newGamma, newDelta, depth+1)
}

// rightOr: [R∨] on A | B in Δ. One subgoal: (Γ, Δ\{A|B} ∪ {A,B}).
func (r *Reasoner) rightOr(t sentence.Or, gamma, delta sentence.Set, depth int) bool {
	r.emit(depth, "[R∨] on %s", t)
	newDelta := delta.Remove(t).Add(t.Left).Add(t.Right)
	return r.prove(gamma, newDelta, depth+1)
}

// rightImplies: [R→] on A → B in Δ. One subgoal (the DD condition):
// (Γ ∪ {A}, Δ\{A→B} ∪ {B}).
func (r *Reasoner) rightImplies(t sentence.Implies, gamma, delta sentence.Set, depth int) bool {
	r.emit(depth, "[R→] on %s", t)
	newGamma := gamma.Add(t.Left)
	newDelta := delta.Remove(t).Add(t.Right)
	return r.prove(newGamma, newDelta, depth+1)
}

// rightAnd: [R∧] on A & B in Δ. Three subgoals, all must succeed
// (Ketonen with third top sequent).
func (r *Reasoner) rightAnd(t sentence.And, gamma, delta sentence.Set, depth int) bool {
	r.emit(depth, "[R∧] on %s", t)
	base := delta.Remove(t)
	d1 := base.Add(t.Left)
	d2 := base.Add(t.Right)
	d3 := base.Add(t.Left).Add(t.Right)
	return r.prove(gamma, d1, depth+1) &&
		r.prove(gamma, d2, depth+1) &&
		r.prove(gamma, d3, depth+1)
}

// rightAllRestrict: [R∀R.C] eigenvariable on ALL R.C(a) in Δ. Introduces a
// fresh individual not appearing in Γ∪Δ, canonically named _e_{R}_{C}_{a}
// unless that name is already in use, in which case a numeric suffix is
// appended until the collision is resolved — freshness is the invariant,
// the canonical name is just the default.
func (r *Reasoner) rightAllRestrict(t sentence.AllRestrict, gamma, delta sentence.Set, depth int) bool {
	canonical := fmt.Sprintf("_e_%s_%s_%s", t.Role, t.Concept, t.Individual)
	used := sentence.CollectIndividuals(gamma.Union(delta))
	fresh := sentence.FreshIndividual(used, canonical)
	r.emit(depth, "[R∀R.C] on %s, eigen %s", t, fresh)
	newGamma := gamma.Add(sentence.RoleAtom{Role: t.Role, Subject: t.Individual, Object: fresh})
	newDelta := delta.Remove(t).Add(sentence.ConceptAtom{Concept: t.Concept, Individual: fresh})
	return r.prove(newGamma, newDelta, depth+1)
}

// rightSomeRestrict: [R∃R.C] witnesses on SOME R.C(a) in Δ. Tries known
// triggers first, then (experimentally) a fresh canonical witness subject to
// concept-label subset blocking (§4.4.3, OQ-2). The canonical witness name
// is only ever tried when it isn't already bound to some other individual
// in Γ∪Δ — mirroring the original's `if canonical_fresh not in used:` gate,
// which wraps both the blocking check and the fresh-witness attempt. Without
// it, a `_w_…` name already carrying unrelated constraints elsewhere in the
// sequent would get silently reused as if it denoted a brand-new individual.
func (r *Reasoner) rightSomeRestrict(t sentence.SomeRestrict, gamma, delta sentence.Set, depth int) bool {
	r.emit(depth, "[R∃R.C] on %s", t)
	triggers := sentence.FindRoleTriggers(gamma, t.Role, t.Individual)
	base := delta.Remove(t)

	for _, b := range triggers {
		d := base.Add(sentence.ConceptAtom{Concept: t.Concept, Individual: b})
		if r.prove(gamma, d, depth+1) {
			return true
		}
	}

	fresh := fmt.Sprintf("_w_%s_%s_%s", t.Role, t.Concept, t.Individual)
	used := sentence.CollectIndividuals(gamma.Union(delta))
	if _, taken := used[fresh]; taken {
		return false
	}

	if r.blockingEnabled {
		if blocker := sentence.FindBlockingIndividual(fresh, gamma, delta, used); blocker != "" {
			return false
		}
	}
	return r.tryFreshWitness(t, fresh, gamma, base, depth)
}

func (r *Reasoner) tryFreshWitness(t sentence.SomeRestrict, fresh string, gamma, base sentence.Set, depth int) bool {
	if !r.blockWarned && r.onBlockWarning != nil {
		r.blockWarned = true
		r.onBlockWarning(fresh, t.Individual)
	}
	newGamma := gamma.Add(sentence.RoleAtom{Role: t.Role, Subject: t.Individual, Object: fresh})
	newDelta := base.Add(sentence.ConceptAtom{Concept: t.Concept, Individual: fresh})
	return r.prove(newGamma, newDelta, depth+1)
}
