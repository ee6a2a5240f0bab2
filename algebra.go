package traitmatch

// Trait algebra: pure structural operators over trait field sets. Operators
// never touch candidates; they only combine declarations.

// Union returns a trait accepting candidates that satisfy either input.
// The field set is the union by name. A field declared by only one input
// becomes optional (a candidate of the other trait may lack it); a field
// declared by both is required only when both require it, and a declared-type
// conflict widens to a OneOf accepting either original type.
func Union(a, b TraitSpec) (TraitSpec, error) {
	fields := make([]FieldSpec, 0, len(a.fields)+len(b.fields))
	for _, fa := range a.fields {
		fb, shared := b.Field(fa.Name)
		if !shared {
			fa.Required = false
			fields = append(fields, fa)
			continue
		}
		merged := FieldSpec{
			Name:     fa.Name,
			Type:     widenTypes(fa.Type, fb.Type),
			Required: fa.Required && fb.Required,
			Default:  fa.Default,
		}
		if merged.Default == nil {
			merged.Default = fb.Default
		}
		fields = append(fields, merged)
	}
	for _, fb := range b.fields {
		if _, shared := a.Field(fb.Name); shared {
			continue
		}
		fb.Required = false
		fields = append(fields, fb)
	}
	return newAlgebraTrait(joinNames(a, b, "|"), fields)
}

// Intersect returns a trait requiring candidates to satisfy both inputs.
// The field set is the intersection by name; requiredness is kept when either
// input requires the field. On a declared-type conflict the narrower type is
// kept — the one the other side already accepts under the pragmatic policy.
// When neither accepts the other, no observed type can satisfy both, and the
// field keeps an empty OneOf that matches nothing.
func Intersect(a, b TraitSpec) (TraitSpec, error) {
	fields := make([]FieldSpec, 0, len(a.fields))
	for _, fa := range a.fields {
		fb, shared := b.Field(fa.Name)
		if !shared {
			continue
		}
		merged := FieldSpec{
			Name:     fa.Name,
			Type:     narrowTypes(fa.Type, fb.Type),
			Required: fa.Required || fb.Required,
			Default:  fa.Default,
		}
		if merged.Default == nil {
			merged.Default = fb.Default
		}
		fields = append(fields, merged)
	}
	return newAlgebraTrait(joinNames(a, b, "&"), fields)
}

// Minus returns a copy of the trait with the named fields removed. Removing
// an absent name is a no-op.
func Minus(a TraitSpec, names ...string) (TraitSpec, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}
	fields := make([]FieldSpec, 0, len(a.fields))
	for _, f := range a.fields {
		if drop[f.Name] {
			continue
		}
		fields = append(fields, f)
	}
	return newAlgebraTrait(a.name, fields)
}

// newAlgebraTrait rebuilds through NewTrait so the unique-name invariant is
// re-asserted on every operator result.
func newAlgebraTrait(name string, fields []FieldSpec) (TraitSpec, error) {
	t, err := NewTrait(name, fields...)
	if err != nil {
		return TraitSpec{}, err
	}
	return t, nil
}

// widenTypes returns the most permissive expression accepting either type.
func widenTypes(a, b TypeExpr) TypeExpr {
	if ExprEqual(a, b) {
		return a
	}
	if _, ok := a.(anyType); ok {
		return a
	}
	if _, ok := b.(anyType); ok {
		return b
	}
	return OneOf(a, b)
}

// narrowTypes returns the more restrictive of the two types.
func narrowTypes(a, b TypeExpr) TypeExpr {
	if ExprEqual(a, b) {
		return a
	}
	pragmatic := Pragmatic()
	// a narrower: a is accepted where b is declared.
	if Compatible(b, a, pragmatic) {
		return a
	}
	if Compatible(a, b, pragmatic) {
		return b
	}
	// Irreconcilable; an empty union accepts nothing.
	return OneOf()
}

func joinNames(a, b TraitSpec, sep string) string {
	if a.name == "" && b.name == "" {
		return ""
	}
	return a.name + sep + b.name
}
