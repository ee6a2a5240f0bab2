package traitmatch

import (
	"fmt"
	"reflect"
)

// ShapeKind classifies which canonicalization variant applies to a candidate.
type ShapeKind int

const (
	ShapeUnknown ShapeKind = iota

	// ShapeDeclaredSchema: the candidate implements FieldDeclarer.
	ShapeDeclaredSchema

	// ShapeStructType: the candidate is a reflect.Type of struct kind
	// (possibly behind pointers); declared field types are used directly.
	ShapeStructType

	// ShapeStructValue: the candidate is a struct value; field types are
	// resolved from runtime values (dynamic types for interface fields).
	ShapeStructValue

	// ShapeMapSchema: the candidate maps field names to type expressions.
	ShapeMapSchema

	// ShapeMapData: the candidate is a map[string]any holding live data.
	ShapeMapData

	// ShapeAttributeScan: fallback scan over a string-keyed map of any
	// concrete value type; presence is key existence, types are observed.
	ShapeAttributeScan
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeDeclaredSchema:
		return "declared-schema"
	case ShapeStructType:
		return "struct-type"
	case ShapeStructValue:
		return "struct-value"
	case ShapeMapSchema:
		return "map-schema"
	case ShapeMapData:
		return "map-data"
	case ShapeAttributeScan:
		return "attribute-scan"
	default:
		return "unknown"
	}
}

// FieldView is one entry of a canonical field map: the resolved type
// expression and whether the field is present on the candidate.
type FieldView struct {
	Type    TypeExpr
	Present bool
}

// FieldDeclarer is the declarative schema contract: a candidate exposes its
// field metadata directly. DeclaredFields must be a pure function of the
// receiver's type — the engine caches per concrete type.
type FieldDeclarer interface {
	DeclaredFields() []FieldSpec
}

// ClassifyShape inspects a candidate once and reports which canonicalization
// variant applies. The most specific contract wins; string-keyed maps are the
// fallback when no class-level field metadata exists.
func ClassifyShape(candidate any, policy TypeCompatPolicy) (ShapeKind, error) {
	switch c := candidate.(type) {
	case nil:
		return ShapeUnknown, &NormalizationError{Candidate: "<nil>", Reason: "no candidate"}
	case FieldDeclarer:
		return ShapeDeclaredSchema, nil
	case reflect.Type:
		if derefType(c).Kind() == reflect.Struct {
			return ShapeStructType, nil
		}
		return ShapeUnknown, &NormalizationError{
			Candidate: "reflect.Type " + c.String(),
			Reason:    "only struct types carry fields",
		}
	case map[string]TypeExpr, map[string]reflect.Type:
		return ShapeMapSchema, nil
	case map[string]any:
		if policy.MapValues == MapAsSchema {
			return ShapeMapSchema, nil
		}
		return ShapeMapData, nil
	}

	rv := reflect.ValueOf(candidate)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ShapeUnknown, &NormalizationError{Candidate: describeCandidate(candidate), Reason: "nil pointer"}
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		return ShapeStructValue, nil
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return ShapeAttributeScan, nil
		}
	}
	return ShapeUnknown, &NormalizationError{
		Candidate: describeCandidate(candidate),
		Reason:    "unsupported candidate shape",
	}
}

// NormalizeFields converts a candidate into its canonical field map without
// consulting any cache. Canonicalization is deterministic: the same candidate
// under the same policy always yields an identical map.
func NormalizeFields(candidate any, policy TypeCompatPolicy) (map[string]FieldView, ShapeKind, error) {
	kind, err := ClassifyShape(candidate, policy)
	if err != nil {
		return nil, ShapeUnknown, err
	}
	fields, err := normalizeAs(candidate, kind, policy)
	if err != nil {
		return nil, ShapeUnknown, err
	}
	return fields, kind, nil
}

func normalizeAs(candidate any, kind ShapeKind, policy TypeCompatPolicy) (map[string]FieldView, error) {
	switch kind {
	case ShapeDeclaredSchema:
		return normalizeDeclared(candidate.(FieldDeclarer))
	case ShapeStructType:
		return normalizeStructType(derefType(candidate.(reflect.Type))), nil
	case ShapeStructValue:
		rv := reflect.ValueOf(candidate)
		for rv.Kind() == reflect.Pointer {
			rv = rv.Elem()
		}
		return normalizeStructValue(rv), nil
	case ShapeMapSchema:
		return normalizeMapSchema(candidate)
	case ShapeMapData:
		return normalizeMapData(candidate.(map[string]any)), nil
	case ShapeAttributeScan:
		rv := reflect.ValueOf(candidate)
		for rv.Kind() == reflect.Pointer {
			rv = rv.Elem()
		}
		return normalizeAttributeScan(rv), nil
	default:
		return nil, &NormalizationError{Candidate: describeCandidate(candidate), Reason: "unsupported candidate shape"}
	}
}

func normalizeDeclared(c FieldDeclarer) (map[string]FieldView, error) {
	declared := c.DeclaredFields()
	out := make(map[string]FieldView, len(declared))
	for _, f := range declared {
		if f.Name == "" || f.Type == nil {
			return nil, &NormalizationError{
				Candidate: describeCandidate(c),
				Reason:    "declared field with empty name or nil type",
			}
		}
		if _, dup := out[f.Name]; dup {
			return nil, &NormalizationError{
				Candidate: describeCandidate(c),
				Reason:    fmt.Sprintf("duplicate declared field %q", f.Name),
			}
		}
		out[f.Name] = FieldView{Type: f.Type, Present: true}
	}
	return out, nil
}

func normalizeStructType(t reflect.Type) map[string]FieldView {
	fields := collectStructFields(t)
	out := make(map[string]FieldView, len(fields))
	for _, f := range fields {
		out[f.name] = FieldView{Type: GoType(f.typ), Present: true}
	}
	return out
}

func normalizeStructValue(rv reflect.Value) map[string]FieldView {
	fields := collectStructFields(rv.Type())
	out := make(map[string]FieldView, len(fields))
	for _, f := range fields {
		resolved := f.typ
		if fv, ok := fieldByIndex(rv, f.index); ok {
			// Interface-typed fields resolve to the value's dynamic type.
			if fv.Kind() == reflect.Interface && !fv.IsNil() {
				resolved = fv.Elem().Type()
			}
		}
		out[f.name] = FieldView{Type: GoType(resolved), Present: true}
	}
	return out
}

func normalizeMapSchema(candidate any) (map[string]FieldView, error) {
	switch m := candidate.(type) {
	case map[string]TypeExpr:
		out := make(map[string]FieldView, len(m))
		for name, expr := range m {
			if expr == nil {
				return nil, &NormalizationError{Candidate: describeCandidate(candidate), Reason: fmt.Sprintf("field %q: nil type expression", name)}
			}
			out[name] = FieldView{Type: expr, Present: true}
		}
		return out, nil
	case map[string]reflect.Type:
		out := make(map[string]FieldView, len(m))
		for name, t := range m {
			if t == nil {
				return nil, &NormalizationError{Candidate: describeCandidate(candidate), Reason: fmt.Sprintf("field %q: nil type", name)}
			}
			out[name] = FieldView{Type: GoType(t), Present: true}
		}
		return out, nil
	case map[string]any:
		out := make(map[string]FieldView, len(m))
		for name, v := range m {
			expr, ok := exprFromAny(v)
			if !ok {
				return nil, &NormalizationError{
					Candidate: describeCandidate(candidate),
					Reason:    fmt.Sprintf("field %q: value %T is not a type expression (map read as schema)", name, v),
				}
			}
			out[name] = FieldView{Type: expr, Present: true}
		}
		return out, nil
	default:
		return nil, &NormalizationError{Candidate: describeCandidate(candidate), Reason: "unsupported map schema"}
	}
}

func normalizeMapData(m map[string]any) map[string]FieldView {
	out := make(map[string]FieldView, len(m))
	for name, v := range m {
		if v == nil {
			out[name] = FieldView{Type: Any(), Present: true}
			continue
		}
		out[name] = FieldView{Type: GoType(reflect.TypeOf(v)), Present: true}
	}
	return out
}

func normalizeAttributeScan(rv reflect.Value) map[string]FieldView {
	out := make(map[string]FieldView, rv.Len())
	elem := rv.Type().Elem()
	iter := rv.MapRange()
	for iter.Next() {
		name := iter.Key().String()
		ev := iter.Value()
		resolved := elem
		if ev.Kind() == reflect.Interface {
			if ev.IsNil() {
				out[name] = FieldView{Type: Any(), Present: true}
				continue
			}
			resolved = ev.Elem().Type()
		}
		out[name] = FieldView{Type: GoType(resolved), Present: true}
	}
	return out
}

type structField struct {
	name  string
	typ   reflect.Type
	index []int
}

// collectStructFields flattens a struct's exported fields, following embedded
// structs the way field promotion does: shallower fields win, and within one
// depth the first declaration wins. The `trait` tag overrides the field name;
// `trait:"-"` skips the field.
func collectStructFields(t reflect.Type) []structField {
	var out []structField
	taken := map[string]int{} // name → depth it was taken at

	type queued struct {
		typ   reflect.Type
		index []int
		depth int
	}
	queue := []queued{{typ: t}}
	visited := map[reflect.Type]bool{}

	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		if visited[q.typ] {
			continue
		}
		visited[q.typ] = true

		for i := 0; i < q.typ.NumField(); i++ {
			f := q.typ.Field(i)
			index := append(append([]int{}, q.index...), i)

			if f.Anonymous {
				ft := f.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct && f.Tag.Get("trait") == "" {
					queue = append(queue, queued{typ: ft, index: index, depth: q.depth + 1})
					continue
				}
			}
			if !f.IsExported() {
				continue
			}

			name := f.Name
			if tag, ok := f.Tag.Lookup("trait"); ok {
				if tag == "-" {
					continue
				}
				if tag != "" {
					name = tag
				}
			}
			if prev, ok := taken[name]; ok && prev <= q.depth {
				continue
			}
			taken[name] = q.depth
			replaced := false
			for j := range out {
				if out[j].name == name {
					out[j] = structField{name: name, typ: f.Type, index: index}
					replaced = true
					break
				}
			}
			if !replaced {
				out = append(out, structField{name: name, typ: f.Type, index: index})
			}
		}
	}
	return out
}

// fieldByIndex walks an index path, reporting false when a nil embedded
// pointer makes the value unreachable (the declared type is used instead).
func fieldByIndex(rv reflect.Value, index []int) (reflect.Value, bool) {
	for _, i := range index {
		for rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return reflect.Value{}, false
			}
			rv = rv.Elem()
		}
		rv = rv.Field(i)
	}
	return rv, true
}

func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func describeCandidate(candidate any) string {
	return fmt.Sprintf("%T", candidate)
}
