package traitmatch

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/traitmatch/traitmatch-go/fingerprint"
)

// FieldSpec describes one required or optional field of a trait.
// Treat values as immutable once handed to NewTrait.
type FieldSpec struct {
	Name     string
	Type     TypeExpr
	Required bool

	// Default is advisory metadata for optional fields; it never influences
	// satisfaction (the engine answers shape questions, not value questions).
	Default any
}

func (f FieldSpec) fingerprint() string {
	var b strings.Builder
	b.WriteString(strconv.Quote(f.Name))
	b.WriteByte('=')
	b.WriteString(f.Type.token())
	if f.Required {
		b.WriteString("!req")
	}
	if f.Default != nil {
		b.WriteString("~" + fingerprint.Literal(f.Default))
	}
	return b.String()
}

// TraitSpec is a named, ordered collection of field requirements. Field names
// are unique within one trait; order is preserved for diagnostics only and
// does not affect satisfaction or equality. The name is for diagnostics and
// registry use and is excluded from equality.
type TraitSpec struct {
	name   string
	fields []FieldSpec
	index  map[string]int
}

// NewTrait builds a trait from the given fields. It fails with a
// *ConfigurationError on duplicate or empty field names and on fields with a
// nil type expression.
func NewTrait(name string, fields ...FieldSpec) (TraitSpec, error) {
	owned := make([]FieldSpec, len(fields))
	copy(owned, fields)

	index := make(map[string]int, len(owned))
	for i, f := range owned {
		if f.Name == "" {
			return TraitSpec{}, &ConfigurationError{Trait: name, Reason: fmt.Sprintf("field %d: empty name", i)}
		}
		if f.Type == nil {
			return TraitSpec{}, &ConfigurationError{Trait: name, Reason: fmt.Sprintf("field %q: nil type expression", f.Name)}
		}
		if _, dup := index[f.Name]; dup {
			return TraitSpec{}, &ConfigurationError{Trait: name, Reason: fmt.Sprintf("duplicate field name %q", f.Name)}
		}
		index[f.Name] = i
	}
	return TraitSpec{name: name, fields: owned, index: index}, nil
}

// MustTrait is NewTrait panicking on error, for fixtures and package-level
// trait declarations.
func MustTrait(name string, fields ...FieldSpec) TraitSpec {
	t, err := NewTrait(name, fields...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the trait's diagnostic name.
func (t TraitSpec) Name() string { return t.name }

// Len returns the number of fields.
func (t TraitSpec) Len() int { return len(t.fields) }

// Fields returns a copy of the field list in declaration order.
func (t TraitSpec) Fields() []FieldSpec {
	out := make([]FieldSpec, len(t.fields))
	copy(out, t.fields)
	return out
}

// Field looks up a field by name.
func (t TraitSpec) Field(name string) (FieldSpec, bool) {
	i, ok := t.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return t.fields[i], true
}

// FieldNames returns the field names in declaration order.
func (t TraitSpec) FieldNames() []string {
	out := make([]string, len(t.fields))
	for i, f := range t.fields {
		out[i] = f.Name
	}
	return out
}

// Fingerprint returns a deterministic structural token for the trait. The
// name and the field declaration order are excluded, so two traits with the
// same field set fingerprint identically. Suitable as a cache or adapter key.
func (t TraitSpec) Fingerprint() string {
	toks := make([]string, len(t.fields))
	for i, f := range t.fields {
		toks[i] = f.fingerprint()
	}
	sort.Strings(toks)
	return "trait{" + strings.Join(toks, ",") + "}"
}

// Equal reports structural equality: same field set with the same types,
// requiredness, and defaults. Names are ignored.
func (t TraitSpec) Equal(o TraitSpec) bool {
	if len(t.fields) != len(o.fields) {
		return false
	}
	return t.Fingerprint() == o.Fingerprint()
}

func (t TraitSpec) String() string {
	names := t.FieldNames()
	if t.name == "" {
		return "trait{" + strings.Join(names, ", ") + "}"
	}
	return t.name + "{" + strings.Join(names, ", ") + "}"
}
