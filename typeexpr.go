package traitmatch

import (
	"reflect"
	"sort"
	"strings"

	"github.com/traitmatch/traitmatch-go/fingerprint"
)

// TypeExpr is a declared or observed type expression: a concrete Go type, a
// union of alternatives, an optional wrapper, a literal-valued type, the
// callable marker, or the top type. The variant set is closed; construct
// expressions through GoType, TypeOf, OneOf, Optional, Literal, AnyCallable,
// and Any.
type TypeExpr interface {
	// token returns the canonical equivalence key for the expression.
	// Two expressions are structurally equal exactly when tokens match.
	token() string

	// String returns a display form used in diagnostics.
	String() string
}

// ExprEqual reports structural equality of two type expressions.
func ExprEqual(a, b TypeExpr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.token() == b.token()
}

type goType struct {
	t reflect.Type
}

// GoType wraps a concrete reflect type as a type expression.
func GoType(t reflect.Type) TypeExpr {
	return goType{t: t}
}

// TypeOf returns the type expression for the Go type T.
func TypeOf[T any]() TypeExpr {
	return goType{t: reflect.TypeOf((*T)(nil)).Elem()}
}

func (g goType) token() string  { return "t:" + fingerprint.Type(g.t) }
func (g goType) String() string { return typeDisplay(g.t) }

type unionType struct {
	alts []TypeExpr
}

// OneOf returns a union expression accepting any of the alternatives. Nested
// unions are flattened, duplicates removed, and alternatives canonically
// ordered, so OneOf(a, b) and OneOf(b, a) are structurally equal. OneOf with
// no alternatives accepts nothing.
func OneOf(alts ...TypeExpr) TypeExpr {
	flat := make([]TypeExpr, 0, len(alts))
	seen := map[string]bool{}
	var add func(e TypeExpr)
	add = func(e TypeExpr) {
		if e == nil {
			return
		}
		if u, ok := e.(unionType); ok {
			for _, alt := range u.alts {
				add(alt)
			}
			return
		}
		tok := e.token()
		if seen[tok] {
			return
		}
		seen[tok] = true
		flat = append(flat, e)
	}
	for _, alt := range alts {
		add(alt)
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i].token() < flat[j].token() })
	if len(flat) == 1 {
		return flat[0]
	}
	return unionType{alts: flat}
}

func (u unionType) token() string {
	toks := make([]string, len(u.alts))
	for i, alt := range u.alts {
		toks[i] = alt.token()
	}
	return "u:(" + strings.Join(toks, "|") + ")"
}

func (u unionType) String() string {
	parts := make([]string, len(u.alts))
	for i, alt := range u.alts {
		parts[i] = alt.String()
	}
	return "OneOf(" + strings.Join(parts, ", ") + ")"
}

type optionalType struct {
	elem TypeExpr
}

// Optional marks a declared type as optional: the field may be absent, and a
// present value must match the element type.
func Optional(elem TypeExpr) TypeExpr {
	if o, ok := elem.(optionalType); ok {
		return o
	}
	return optionalType{elem: elem}
}

func (o optionalType) token() string  { return "o:(" + o.elem.token() + ")" }
func (o optionalType) String() string { return "Optional(" + o.elem.String() + ")" }

type literalType struct {
	value any
	base  reflect.Type
}

// Literal returns the type expression accepting exactly the given value.
// The underlying base type is the value's Go type.
func Literal(value any) TypeExpr {
	return literalType{value: value, base: reflect.TypeOf(value)}
}

func (l literalType) token() string  { return "l:" + fingerprint.Literal(l.value) }
func (l literalType) String() string { return "Literal(" + fingerprint.Literal(l.value) + ")" }

type callableType struct{}

// AnyCallable returns the callable-signature marker: any func-shaped observed
// type satisfies it under a policy with callable compatibility enabled.
// Signature-level checking belongs to the methodset package.
func AnyCallable() TypeExpr { return callableType{} }

func (callableType) token() string  { return "c:" }
func (callableType) String() string { return "Callable" }

type anyType struct{}

// Any returns the top type expression, accepted and accepting everywhere as a
// declared type. As an observed type it marks an unknown (nil) attribute.
func Any() TypeExpr { return anyType{} }

func (anyType) token() string  { return "*" }
func (anyType) String() string { return "Any" }

func typeDisplay(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// exprFromAny interprets a map-schema value as a type expression.
func exprFromAny(v any) (TypeExpr, bool) {
	switch x := v.(type) {
	case TypeExpr:
		return x, true
	case reflect.Type:
		return GoType(x), true
	default:
		return nil, false
	}
}
