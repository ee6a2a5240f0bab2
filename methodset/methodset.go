// Package methodset checks callable surfaces the way the core engine checks
// fields: a MethodSpec declares an expected method shape, and Satisfies and
// Explain test a value's or type's method set against it. Field-level trait
// matching treats all callables alike; signature questions live here.
package methodset

import (
	"fmt"
	"reflect"
	"sort"
)

// MethodSpec describes one expected method. With Signature nil the check is
// arity-level: parameter and result counts plus variadicity. With Signature
// set to a func type, the method's signature (receiver excluded) must be
// identical.
type MethodSpec struct {
	Name     string
	NumIn    int
	NumOut   int
	Variadic bool

	Signature reflect.Type
}

// Report is the structured result of Explain.
type Report struct {
	OK         bool              `json:"ok"`
	Missing    []string          `json:"missing,omitempty"`
	Mismatched map[string]string `json:"mismatched,omitempty"`
}

// Satisfies reports whether the candidate's method set provides every spec.
// The candidate may be a value or a reflect.Type; for values the pointer
// method set is included.
func Satisfies(candidate any, specs ...MethodSpec) bool {
	t, ok := candidateType(candidate)
	if !ok {
		return false
	}
	for _, spec := range specs {
		if reason := checkMethod(t, spec); reason != "" {
			return false
		}
	}
	return true
}

// Explain checks every spec and returns a full report.
func Explain(candidate any, specs ...MethodSpec) Report {
	report := Report{OK: true}
	t, ok := candidateType(candidate)
	if !ok {
		report.OK = false
		for _, spec := range specs {
			report.Missing = append(report.Missing, spec.Name)
		}
		sort.Strings(report.Missing)
		return report
	}
	for _, spec := range specs {
		reason := checkMethod(t, spec)
		switch reason {
		case "":
		case "missing":
			report.OK = false
			report.Missing = append(report.Missing, spec.Name)
		default:
			report.OK = false
			if report.Mismatched == nil {
				report.Mismatched = map[string]string{}
			}
			report.Mismatched[spec.Name] = reason
		}
	}
	sort.Strings(report.Missing)
	return report
}

func candidateType(candidate any) (reflect.Type, bool) {
	switch c := candidate.(type) {
	case nil:
		return nil, false
	case reflect.Type:
		return c, true
	default:
		t := reflect.TypeOf(candidate)
		// A value's pointer method set is callable through addressing, so
		// check the widest set.
		if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
			return reflect.PointerTo(t), true
		}
		return t, true
	}
}

// checkMethod returns "" when the method satisfies the spec, "missing" when
// absent, and a human-readable reason otherwise.
func checkMethod(t reflect.Type, spec MethodSpec) string {
	m, ok := t.MethodByName(spec.Name)
	if !ok {
		return "missing"
	}
	ft := m.Type

	// Non-interface method types carry the receiver as the first parameter.
	recv := 0
	if t.Kind() != reflect.Interface {
		recv = 1
	}
	numIn := ft.NumIn() - recv

	if spec.Signature != nil {
		if spec.Signature.Kind() != reflect.Func {
			return fmt.Sprintf("spec signature %s is not a func type", spec.Signature)
		}
		if !sameSignature(ft, recv, spec.Signature) {
			return fmt.Sprintf("signature %s, want %s", stripReceiver(ft, recv), spec.Signature)
		}
		return ""
	}

	if numIn != spec.NumIn {
		return fmt.Sprintf("%d parameters, want %d", numIn, spec.NumIn)
	}
	if ft.NumOut() != spec.NumOut {
		return fmt.Sprintf("%d results, want %d", ft.NumOut(), spec.NumOut)
	}
	if ft.IsVariadic() != spec.Variadic {
		return fmt.Sprintf("variadic %t, want %t", ft.IsVariadic(), spec.Variadic)
	}
	return ""
}

func sameSignature(ft reflect.Type, recv int, want reflect.Type) bool {
	if ft.NumIn()-recv != want.NumIn() || ft.NumOut() != want.NumOut() || ft.IsVariadic() != want.IsVariadic() {
		return false
	}
	for i := 0; i < want.NumIn(); i++ {
		if ft.In(i+recv) != want.In(i) {
			return false
		}
	}
	for i := 0; i < want.NumOut(); i++ {
		if ft.Out(i) != want.Out(i) {
			return false
		}
	}
	return true
}

func stripReceiver(ft reflect.Type, recv int) reflect.Type {
	if recv == 0 {
		return ft
	}
	in := make([]reflect.Type, 0, ft.NumIn()-1)
	for i := 1; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}
	out := make([]reflect.Type, 0, ft.NumOut())
	for i := 0; i < ft.NumOut(); i++ {
		out = append(out, ft.Out(i))
	}
	return reflect.FuncOf(in, out, ft.IsVariadic())
}
