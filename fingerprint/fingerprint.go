// Package fingerprint produces deterministic canonical tokens for Go values,
// reflect types, and name-keyed field sets.
//
// Tokens are used as equivalence keys: two literals are the same literal type
// exactly when their tokens are equal, and a map-shaped candidate caches under
// the token of its field set. Tokens are stable across processes for the same
// input, so they are also safe in golden tests.
//
// Number formatting follows ECMAScript-compatible serialization (the RFC 8785
// rules): shortest round-trip form, no negative zero, unpadded exponents. This
// keeps float tokens identical regardless of how the value was written.
package fingerprint

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Literal returns a canonical token for a Go value. The token includes the
// value's type, so Literal(int(1)) and Literal(int64(1)) differ.
func Literal(v any) string {
	if v == nil {
		return "null"
	}
	return Type(reflect.TypeOf(v)) + "=" + valueToken(reflect.ValueOf(v))
}

func valueToken(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return "true"
		}
		return "false"
	case reflect.String:
		return quoteToken(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float())
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		return "(" + formatFloat(real(c)) + "+" + formatFloat(imag(c)) + "i)"
	case reflect.Slice, reflect.Array:
		var b strings.Builder
		b.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(valueToken(rv.Index(i)))
		}
		b.WriteByte(']')
		return b.String()
	case reflect.Map:
		entries := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, valueToken(iter.Key())+":"+valueToken(iter.Value()))
		}
		sort.Strings(entries)
		return "{" + strings.Join(entries, ",") + "}"
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
		return valueToken(rv.Elem())
	default:
		// Structs, channels, funcs: fall back to the fmt representation.
		// Not canonical across processes for pointers, but literal types are
		// overwhelmingly scalars, strings, and small containers.
		return fmt.Sprintf("%#v", rv.Interface())
	}
}

// Type returns a canonical token for a reflect type. Named types use the full
// package path, so identically named types from different packages never
// collide; unnamed composites are rendered structurally.
func Type(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" {
		if t.PkgPath() != "" {
			return t.PkgPath() + "." + t.Name()
		}
		return t.Name()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + Type(t.Elem())
	case reflect.Slice:
		return "[]" + Type(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + Type(t.Elem())
	case reflect.Map:
		return "map[" + Type(t.Key()) + "]" + Type(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + Type(t.Elem())
		case reflect.SendDir:
			return "chan<- " + Type(t.Elem())
		default:
			return "chan " + Type(t.Elem())
		}
	case reflect.Func:
		return funcToken(t)
	case reflect.Struct:
		var b strings.Builder
		b.WriteString("struct{")
		for i := 0; i < t.NumField(); i++ {
			if i > 0 {
				b.WriteByte(';')
			}
			f := t.Field(i)
			b.WriteString(f.Name)
			b.WriteByte(' ')
			b.WriteString(Type(f.Type))
		}
		b.WriteByte('}')
		return b.String()
	case reflect.Interface:
		var b strings.Builder
		b.WriteString("interface{")
		for i := 0; i < t.NumMethod(); i++ {
			if i > 0 {
				b.WriteByte(';')
			}
			m := t.Method(i)
			b.WriteString(m.Name)
			b.WriteString(funcToken(m.Type))
		}
		b.WriteByte('}')
		return b.String()
	default:
		return t.String()
	}
}

func funcToken(t reflect.Type) string {
	var b strings.Builder
	b.WriteString("func(")
	for i := 0; i < t.NumIn(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		if t.IsVariadic() && i == t.NumIn()-1 {
			b.WriteString("...")
			b.WriteString(Type(t.In(i).Elem()))
			continue
		}
		b.WriteString(Type(t.In(i)))
	}
	b.WriteByte(')')
	if t.NumOut() > 0 {
		b.WriteByte('(')
		for i := 0; i < t.NumOut(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(Type(t.Out(i)))
		}
		b.WriteByte(')')
	}
	return b.String()
}

// Fields returns a canonical token for a name→token mapping. Names are sorted
// byte-lexicographically, so insertion order never leaks into the token.
func Fields(m map[string]string) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteToken(name))
		b.WriteByte(':')
		b.WriteString(m[name])
	}
	b.WriteByte('}')
	return b.String()
}

func quoteToken(s string) string {
	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r <= 0x1F:
			fmt.Fprintf(&buf, `\u%04x`, r)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}

// formatFloat serializes a float the ECMAScript way: shortest round-trip,
// "-0" folded to "0", exponents unpadded (1e-6, not 1e-06).
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 0) {
		if f > 0 {
			return "Infinity"
		}
		return "-Infinity"
	}
	if f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	var s string
	if abs >= 1e21 || abs < 1e-6 {
		s = normalizeExponent(strconv.FormatFloat(f, 'e', -1, 64))
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if s == "-0" {
		return "0"
	}
	return s
}

func normalizeExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	sign := s[i+1]
	exp := s[i+2:]
	// trim leading zeros, keep at least one digit
	j := 0
	for j < len(exp)-1 && exp[j] == '0' {
		j++
	}
	return s[:i+1] + string(sign) + exp[j:]
}
