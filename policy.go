package traitmatch

import "strconv"

// MapInterpretation selects how a map[string]any candidate is read. The
// source of this design had an implicit dual interpretation of such maps;
// here it is an explicit policy switch.
type MapInterpretation int

const (
	// MapAsData treats map values as live data: the resolved field type is
	// the runtime type of each value. This is the default in both presets.
	MapAsData MapInterpretation = iota

	// MapAsSchema treats map values as type expressions (TypeExpr or
	// reflect.Type); any other value is a normalization failure.
	MapAsSchema
)

func (m MapInterpretation) String() string {
	switch m {
	case MapAsData:
		return "data"
	case MapAsSchema:
		return "schema"
	default:
		return "unknown"
	}
}

// TypeCompatPolicy configures how strictly an observed type expression must
// match a declared one. Policies are value types: never mutate a policy a
// running engine was given, substitute a new one.
type TypeCompatPolicy struct {
	// AllowAssignable accepts an observed type that is assignable to the
	// declared one, including concrete types implementing a declared
	// interface. This is the Go rendering of subclass acceptance.
	AllowAssignable bool

	// NumericWidening accepts observed numerics below the declared type on
	// the fixed lattice integer → floating-point → complex.
	NumericWidening bool

	// LiteralCompatibility accepts an observed literal-valued type where its
	// underlying base type is declared.
	LiteralCompatibility bool

	// OptionalUnwrapping lets a declared union or optional match when any
	// alternative accepts the observed type.
	OptionalUnwrapping bool

	// CallableCompatibility accepts any callable-shaped observed type where a
	// callable-shaped type is declared, regardless of signature.
	CallableCompatibility bool

	// MapValues picks the reading of map[string]any candidates; it applies
	// during normalization, not comparison, and participates in cache keys.
	MapValues MapInterpretation
}

// Pragmatic returns the default policy: every compatibility widening enabled,
// map values read as data.
func Pragmatic() TypeCompatPolicy {
	return TypeCompatPolicy{
		AllowAssignable:       true,
		NumericWidening:       true,
		LiteralCompatibility:  true,
		OptionalUnwrapping:    true,
		CallableCompatibility: true,
		MapValues:             MapAsData,
	}
}

// Strict returns the policy with every widening disabled: observed types must
// be structurally identical to declared ones.
func Strict() TypeCompatPolicy {
	return TypeCompatPolicy{MapValues: MapAsData}
}

// Fingerprint returns a compact token identifying the policy, used in cache
// keys so results under different policies never alias.
func (p TypeCompatPolicy) Fingerprint() string {
	bit := func(b bool) byte {
		if b {
			return '1'
		}
		return '0'
	}
	return string([]byte{
		'a', bit(p.AllowAssignable),
		'n', bit(p.NumericWidening),
		'l', bit(p.LiteralCompatibility),
		'o', bit(p.OptionalUnwrapping),
		'c', bit(p.CallableCompatibility),
		'm',
	}) + strconv.Itoa(int(p.MapValues))
}
