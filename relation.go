package traitmatch

// TraitRelation describes how two traits' field sets relate.
type TraitRelation int

const (
	// RelationDisjoint: the traits share no field names.
	RelationDisjoint TraitRelation = iota

	// RelationOverlapping: some names are shared but neither trait covers
	// the other.
	RelationOverlapping

	// RelationSubsetOf: every candidate satisfying B also satisfies A.
	RelationSubsetOf

	// RelationSupersetOf: every candidate satisfying A also satisfies B.
	RelationSupersetOf

	// RelationEquivalent: the traits cover each other.
	RelationEquivalent
)

func (r TraitRelation) String() string {
	switch r {
	case RelationDisjoint:
		return "disjoint"
	case RelationOverlapping:
		return "overlapping"
	case RelationSubsetOf:
		return "subset"
	case RelationSupersetOf:
		return "superset"
	case RelationEquivalent:
		return "equivalent"
	default:
		return "unknown"
	}
}

// CompareTraits reports the structural relation between two traits under the
// pragmatic policy. "A superset of B" means A's requirements imply B's: B's
// fields all appear in A with compatible types, and whatever B requires A
// requires too.
func CompareTraits(a, b TraitSpec) TraitRelation {
	aCoversB := covers(a, b)
	bCoversA := covers(b, a)
	switch {
	case aCoversB && bCoversA:
		return RelationEquivalent
	case aCoversB:
		return RelationSupersetOf
	case bCoversA:
		return RelationSubsetOf
	}
	for _, f := range b.fields {
		if _, shared := a.Field(f.Name); shared {
			return RelationOverlapping
		}
	}
	return RelationDisjoint
}

// covers reports whether satisfying A implies satisfying B.
func covers(a, b TraitSpec) bool {
	pragmatic := Pragmatic()
	for _, fb := range b.fields {
		fa, ok := a.Field(fb.Name)
		if !ok {
			return false
		}
		if fb.Required && !fa.Required {
			return false
		}
		if !Compatible(fb.Type, fa.Type, pragmatic) {
			return false
		}
	}
	return true
}
