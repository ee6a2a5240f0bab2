package traitmatch

import "reflect"

// Compatible reports whether an observed type expression can stand in for a
// declared one under the policy. It is pure and total: no side effects, a
// boolean for every input.
//
// With every policy knob disabled the check degenerates to structural
// identity of the two expressions.
func Compatible(declared, observed TypeExpr, policy TypeCompatPolicy) bool {
	if declared == nil || observed == nil {
		return false
	}
	if _, ok := declared.(anyType); ok {
		return true
	}
	if declared.token() == observed.token() {
		return true
	}

	// Declared-side unwrapping: a union or optional declaration accepts an
	// observed type when any alternative does.
	switch d := declared.(type) {
	case unionType:
		if !policy.OptionalUnwrapping {
			return false
		}
		for _, alt := range d.alts {
			if Compatible(alt, observed, policy) {
				return true
			}
		}
		return false
	case optionalType:
		if !policy.OptionalUnwrapping {
			return false
		}
		if o, ok := observed.(optionalType); ok {
			return Compatible(d.elem, o.elem, policy)
		}
		return Compatible(d.elem, observed, policy)
	}

	// Observed-side union: the value may be any alternative, so safe
	// acceptance requires the declaration to accept every alternative.
	if o, ok := observed.(unionType); ok {
		if !policy.OptionalUnwrapping || len(o.alts) == 0 {
			return false
		}
		for _, alt := range o.alts {
			if !Compatible(declared, alt, policy) {
				return false
			}
		}
		return true
	}
	if _, ok := observed.(optionalType); ok {
		// A possibly-absent observed field cannot satisfy a non-optional
		// declaration.
		return false
	}
	if _, ok := observed.(anyType); ok {
		// Unknown observed type (nil attribute); only a declared Any accepts
		// it, handled above.
		return false
	}

	// Literals. A declared literal accepts only the identical literal
	// (structural identity, handled above). An observed literal may stand in
	// for its base type when the policy allows.
	if _, ok := declared.(literalType); ok {
		return false
	}
	if o, ok := observed.(literalType); ok {
		if !policy.LiteralCompatibility || o.base == nil {
			return false
		}
		return Compatible(declared, GoType(o.base), policy)
	}

	// Callable marker: any func-shaped observed type satisfies it.
	if _, ok := declared.(callableType); ok {
		return policy.CallableCompatibility && isCallable(observed)
	}

	d, okD := declared.(goType)
	o, okO := observed.(goType)
	if !okD || !okO {
		return false
	}
	if d.t == nil || o.t == nil {
		return false
	}
	if d.t == o.t {
		return true
	}
	if policy.CallableCompatibility && d.t.Kind() == reflect.Func && o.t.Kind() == reflect.Func {
		return true
	}
	if policy.NumericWidening && widensTo(o.t.Kind(), d.t.Kind()) {
		return true
	}
	if policy.AllowAssignable {
		if o.t.AssignableTo(d.t) {
			return true
		}
		// A pointer receiver method set still counts as implementing a
		// declared interface.
		if d.t.Kind() == reflect.Interface && reflect.PointerTo(o.t).Implements(d.t) {
			return true
		}
	}
	return false
}

func isCallable(e TypeExpr) bool {
	switch x := e.(type) {
	case callableType:
		return true
	case goType:
		return x.t != nil && x.t.Kind() == reflect.Func
	default:
		return false
	}
}

// widensTo implements the fixed numeric lattice integer → floating-point →
// complex. Widening is one-directional and class-level: any integer kind
// widens to any float or complex kind, any float kind to any complex kind.
func widensTo(from, to reflect.Kind) bool {
	switch {
	case isIntegerKind(from):
		return isFloatKind(to) || isComplexKind(to)
	case isFloatKind(from):
		return isComplexKind(to)
	default:
		return false
	}
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isComplexKind(k reflect.Kind) bool {
	return k == reflect.Complex64 || k == reflect.Complex128
}
