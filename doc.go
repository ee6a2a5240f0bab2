// Package traitmatch answers structural type-shape questions: it tests
// whether an arbitrary candidate — a struct type, a struct value, a declared
// schema, or a name→type map — satisfies a named set of expected fields (a
// trait), independent of any nominal relationship between them.
//
// # Quick Start
//
//	user := traitmatch.MustTrait("user",
//		traitmatch.FieldSpec{Name: "ID", Type: traitmatch.TypeOf[int](), Required: true},
//		traitmatch.FieldSpec{Name: "Email", Type: traitmatch.TypeOf[string](), Required: true},
//	)
//
//	type Account struct {
//		ID    int
//		Email string
//		Extra string
//	}
//
//	ok, err := traitmatch.Satisfies(Account{ID: 1, Email: "a@b.c"}, user, traitmatch.Pragmatic())
//
// Extra candidate fields are ignored; only the trait's declarations are
// checked. Explain returns a full diagnostic instead of a boolean.
//
// # Candidate Shapes
//
// A candidate is normalized into a canonical field map before matching. The
// supported shapes, most specific first:
//
//   - a value implementing FieldDeclarer (declarative schema)
//   - a reflect.Type of struct kind (declared field types)
//   - a struct value or pointer to one (field types resolved from the value)
//   - map[string]TypeExpr or map[string]reflect.Type (structural schema)
//   - map[string]any (schema or live data, per TypeCompatPolicy.MapValues)
//   - any other string-keyed map (fallback attribute scan)
//
// Anything else fails with *NormalizationError — never a silent false.
//
// # Policies
//
// TypeCompatPolicy governs how strictly observed types must match declared
// ones. Pragmatic() enables assignability, numeric widening (integer →
// floating-point → complex), literal-to-base acceptance, union and optional
// unwrapping, and signature-blind callable acceptance; Strict() requires
// structural identity. Field-level mismatches are ordinary negative results,
// not errors: mismatch is the expected common case in a structural check.
//
// # Concurrency
//
// Traits and policies are immutable after construction. Engines and the
// package-level functions are safe for concurrent use; the normalization
// cache is the only shared mutable state, and cache hits do not block each
// other.
//
// # Subpackages
//
//   - fingerprint: deterministic canonical tokens for values and types
//   - fieldcache: the normalization cache (statistics, optional Prometheus)
//   - traitname: parse and normalize <name>@<version> trait tokens
//   - traitregistry: token → trait index with batch matching
//   - ducktype: type-membership adapter built on Satisfies
//   - methodset: method-signature checking alongside field checking
package traitmatch
