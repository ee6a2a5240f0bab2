package traitmatch_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	traitmatch "github.com/traitmatch/traitmatch-go"
)

func TestCompatible_Identity(t *testing.T) {
	for _, expr := range []traitmatch.TypeExpr{
		traitmatch.TypeOf[int](),
		traitmatch.TypeOf[string](),
		traitmatch.Literal("x"),
		traitmatch.OneOf(traitmatch.TypeOf[int](), traitmatch.TypeOf[string]()),
		traitmatch.Optional(traitmatch.TypeOf[int]()),
		traitmatch.AnyCallable(),
		traitmatch.Any(),
	} {
		assert.True(t, traitmatch.Compatible(expr, expr, traitmatch.Strict()), "%s against itself under strict", expr)
	}
}

func TestCompatible_DeclaredAnyAcceptsEverything(t *testing.T) {
	for _, observed := range []traitmatch.TypeExpr{
		traitmatch.TypeOf[int](),
		traitmatch.Literal(42),
		traitmatch.Optional(traitmatch.TypeOf[string]()),
		traitmatch.AnyCallable(),
	} {
		assert.True(t, traitmatch.Compatible(traitmatch.Any(), observed, traitmatch.Strict()))
	}
}

func TestCompatible_NilExpressions(t *testing.T) {
	assert.False(t, traitmatch.Compatible(nil, traitmatch.TypeOf[int](), traitmatch.Pragmatic()))
	assert.False(t, traitmatch.Compatible(traitmatch.TypeOf[int](), nil, traitmatch.Pragmatic()))
}

func TestCompatible_NumericWidening(t *testing.T) {
	pragmatic := traitmatch.Pragmatic()

	// Integers widen to floating-point and complex, floats to complex.
	assert.True(t, traitmatch.Compatible(traitmatch.TypeOf[float64](), traitmatch.TypeOf[int](), pragmatic))
	assert.True(t, traitmatch.Compatible(traitmatch.TypeOf[complex128](), traitmatch.TypeOf[int](), pragmatic))
	assert.True(t, traitmatch.Compatible(traitmatch.TypeOf[complex128](), traitmatch.TypeOf[float32](), pragmatic))
	assert.True(t, traitmatch.Compatible(traitmatch.TypeOf[float32](), traitmatch.TypeOf[uint16](), pragmatic))

	// Never the other direction.
	assert.False(t, traitmatch.Compatible(traitmatch.TypeOf[int](), traitmatch.TypeOf[float64](), pragmatic))
	assert.False(t, traitmatch.Compatible(traitmatch.TypeOf[float64](), traitmatch.TypeOf[complex128](), pragmatic))

	// And never under strict.
	assert.False(t, traitmatch.Compatible(traitmatch.TypeOf[float64](), traitmatch.TypeOf[int](), traitmatch.Strict()))
}

type wavWriter struct{}

func (wavWriter) Write(p []byte) (int, error) { return len(p), nil }

type pcmWriter struct{}

func (*pcmWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestCompatible_Assignability(t *testing.T) {
	pragmatic := traitmatch.Pragmatic()
	writer := traitmatch.TypeOf[io.Writer]()

	assert.True(t, traitmatch.Compatible(writer, traitmatch.TypeOf[wavWriter](), pragmatic))

	// Pointer receiver method sets count.
	assert.True(t, traitmatch.Compatible(writer, traitmatch.TypeOf[pcmWriter](), pragmatic))

	assert.False(t, traitmatch.Compatible(writer, traitmatch.TypeOf[int](), pragmatic))
	assert.False(t, traitmatch.Compatible(writer, traitmatch.TypeOf[wavWriter](), traitmatch.Strict()))
}

func TestCompatible_LiteralAgainstBaseType(t *testing.T) {
	pragmatic := traitmatch.Pragmatic()

	// An observed literal stands in for its base type.
	assert.True(t, traitmatch.Compatible(traitmatch.TypeOf[string](), traitmatch.Literal("on"), pragmatic))
	assert.False(t, traitmatch.Compatible(traitmatch.TypeOf[string](), traitmatch.Literal("on"), traitmatch.Strict()))

	// A declared literal accepts only the identical literal.
	assert.True(t, traitmatch.Compatible(traitmatch.Literal("on"), traitmatch.Literal("on"), traitmatch.Strict()))
	assert.False(t, traitmatch.Compatible(traitmatch.Literal("on"), traitmatch.Literal("off"), pragmatic))
	assert.False(t, traitmatch.Compatible(traitmatch.Literal("on"), traitmatch.TypeOf[string](), pragmatic))
}

func TestCompatible_DeclaredUnion(t *testing.T) {
	pragmatic := traitmatch.Pragmatic()
	numOrStr := traitmatch.OneOf(traitmatch.TypeOf[int](), traitmatch.TypeOf[string]())

	assert.True(t, traitmatch.Compatible(numOrStr, traitmatch.TypeOf[int](), pragmatic))
	assert.True(t, traitmatch.Compatible(numOrStr, traitmatch.TypeOf[string](), pragmatic))
	assert.False(t, traitmatch.Compatible(numOrStr, traitmatch.TypeOf[bool](), pragmatic))

	// Unwrapping is gated by the policy; identity still holds.
	assert.False(t, traitmatch.Compatible(numOrStr, traitmatch.TypeOf[int](), traitmatch.Strict()))
	assert.True(t, traitmatch.Compatible(numOrStr, numOrStr, traitmatch.Strict()))
}

func TestCompatible_ObservedUnionNeedsAllAlternatives(t *testing.T) {
	pragmatic := traitmatch.Pragmatic()
	numOrStr := traitmatch.OneOf(traitmatch.TypeOf[int](), traitmatch.TypeOf[string]())

	// The observed value may be any alternative, so a single-type declaration
	// cannot safely accept the union.
	assert.False(t, traitmatch.Compatible(traitmatch.TypeOf[int](), numOrStr, pragmatic))

	// A wider declared union accepts a narrower observed one.
	wider := traitmatch.OneOf(traitmatch.TypeOf[int](), traitmatch.TypeOf[string](), traitmatch.TypeOf[bool]())
	assert.True(t, traitmatch.Compatible(wider, numOrStr, pragmatic))
}

func TestCompatible_DeclaredOptional(t *testing.T) {
	pragmatic := traitmatch.Pragmatic()
	optInt := traitmatch.Optional(traitmatch.TypeOf[int]())

	assert.True(t, traitmatch.Compatible(optInt, traitmatch.TypeOf[int](), pragmatic))
	assert.True(t, traitmatch.Compatible(optInt, traitmatch.Optional(traitmatch.TypeOf[int]()), pragmatic))
	assert.False(t, traitmatch.Compatible(optInt, traitmatch.TypeOf[string](), pragmatic))

	// An observed optional never satisfies a non-optional declaration.
	assert.False(t, traitmatch.Compatible(traitmatch.TypeOf[int](), optInt, pragmatic))
}

func TestCompatible_Callable(t *testing.T) {
	pragmatic := traitmatch.Pragmatic()
	callable := traitmatch.AnyCallable()

	assert.True(t, traitmatch.Compatible(callable, traitmatch.TypeOf[func()](), pragmatic))
	assert.True(t, traitmatch.Compatible(callable, traitmatch.TypeOf[func(int) error](), pragmatic))
	assert.False(t, traitmatch.Compatible(callable, traitmatch.TypeOf[int](), pragmatic))
	assert.False(t, traitmatch.Compatible(callable, traitmatch.TypeOf[func()](), traitmatch.Strict()))

	// Two concrete func types of different signatures match under the knob.
	assert.True(t, traitmatch.Compatible(traitmatch.TypeOf[func()](), traitmatch.TypeOf[func(int)](), pragmatic))
	assert.False(t, traitmatch.Compatible(traitmatch.TypeOf[func()](), traitmatch.TypeOf[func(int)](), traitmatch.Strict()))
}

// Everything strict accepts, pragmatic accepts too: the policy lattice is
// monotone.
func TestCompatible_StrictImpliesPragmatic(t *testing.T) {
	exprs := []traitmatch.TypeExpr{
		traitmatch.TypeOf[int](),
		traitmatch.TypeOf[int64](),
		traitmatch.TypeOf[float64](),
		traitmatch.TypeOf[string](),
		traitmatch.TypeOf[io.Writer](),
		traitmatch.TypeOf[func()](),
		traitmatch.Literal("x"),
		traitmatch.Literal(3),
		traitmatch.OneOf(traitmatch.TypeOf[int](), traitmatch.TypeOf[string]()),
		traitmatch.Optional(traitmatch.TypeOf[int]()),
		traitmatch.AnyCallable(),
		traitmatch.Any(),
	}
	strict, pragmatic := traitmatch.Strict(), traitmatch.Pragmatic()
	for _, declared := range exprs {
		for _, observed := range exprs {
			if traitmatch.Compatible(declared, observed, strict) {
				assert.True(t, traitmatch.Compatible(declared, observed, pragmatic),
					fmt.Sprintf("declared %s observed %s accepted by strict but not pragmatic", declared, observed))
			}
		}
	}
}

func TestPolicy_Fingerprint(t *testing.T) {
	assert.Equal(t, "a1n1l1o1c1m0", traitmatch.Pragmatic().Fingerprint())
	assert.Equal(t, "a0n0l0o0c0m0", traitmatch.Strict().Fingerprint())

	p := traitmatch.Strict()
	p.MapValues = traitmatch.MapAsSchema
	assert.Equal(t, "a0n0l0o0c0m1", p.Fingerprint())
	assert.NotEqual(t, traitmatch.Strict().Fingerprint(), p.Fingerprint())
}
