package base

import "github.com/nmms-lang/nmms/pkg/sentence"

// SchemaKind distinguishes the two schema shapes the RQ extension registers
// on a MaterialBase (§4.4.2).
type SchemaKind int

const (
	// ConceptSchema admits {R(a,b)} |~ {C(b)} for every b with R(a,b) in
	// the queried Γ.
	ConceptSchema SchemaKind = iota
	// InferenceSchema admits {R(a,b), C(b)} |~ S for every witness b
	// mentioned in the queried context.
	InferenceSchema
)

func (k SchemaKind) String() string {
	switch k {
	case ConceptSchema:
		return "concept"
	case InferenceSchema:
		return "inference"
	default:
		return "unknown"
	}
}

// Schema is a lazily-matched axiom template registered on a MaterialBase.
// Neither kind is ever grounded into the consequence set; both are pattern
// matched at is_axiom time against the queried sequent.
type Schema struct {
	Kind       SchemaKind
	Role       string
	Individual string
	Concept    string
	Consequent sentence.Set // InferenceSchema only
}

// admits reports whether this schema's pattern matches (gamma, delta)
// exactly, under some witness individual b present in gamma.
func (s Schema) admits(gamma, delta sentence.Set) bool {
	switch s.Kind {
	case ConceptSchema:
		for _, b := range sentence.FindRoleTriggers(gamma, s.Role, s.Individual) {
			wantGamma := sentence.NewSet(sentence.RoleAtom{Role: s.Role, Subject: s.Individual, Object: b})
			wantDelta := sentence.NewSet(sentence.ConceptAtom{Concept: s.Concept, Individual: b})
			if gamma.Equal(wantGamma) && delta.Equal(wantDelta) {
				return true
			}
		}
		return false
	case InferenceSchema:
		for _, b := range sentence.FindRoleTriggers(gamma, s.Role, s.Individual) {
			wantGamma := sentence.NewSet(
				sentence.RoleAtom{Role: s.Role, Subject: s.Individual, Object: b},
				sentence.ConceptAtom{Concept: s.Concept, Individual: b},
			)
			if gamma.Equal(wantGamma) && delta.Equal(s.Consequent) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
