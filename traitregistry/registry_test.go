package traitregistry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	traitmatch "github.com/traitmatch/traitmatch-go"
	"github.com/traitmatch/traitmatch-go/traitregistry"
)

var (
	identified = traitmatch.MustTrait("identified",
		traitmatch.FieldSpec{Name: "ID", Type: traitmatch.TypeOf[int](), Required: true},
	)
	contactable = traitmatch.MustTrait("contactable",
		traitmatch.FieldSpec{Name: "ID", Type: traitmatch.TypeOf[int](), Required: true},
		traitmatch.FieldSpec{Name: "Email", Type: traitmatch.TypeOf[string](), Required: true},
	)
	timestamped = traitmatch.MustTrait("timestamped",
		traitmatch.FieldSpec{Name: "CreatedAt", Type: traitmatch.TypeOf[int64](), Required: true},
	)
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := traitregistry.New()
	require.NoError(t, reg.Register("Identified@1", identified))

	got, ok := reg.Get("identified@1")
	require.True(t, ok, "lookup is case-normalized")
	assert.True(t, got.Equal(identified))

	_, ok = reg.Get("unknown")
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_DuplicateToken(t *testing.T) {
	reg := traitregistry.New()
	require.NoError(t, reg.Register("identified", identified))

	err := reg.Register("Identified", contactable)
	require.Error(t, err, "tokens collide after normalization")
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_InvalidToken(t *testing.T) {
	reg := traitregistry.New()
	assert.Error(t, reg.Register("@bad", identified))
	assert.Error(t, reg.Register("", identified))
}

func TestRegistry_Unregister(t *testing.T) {
	reg := traitregistry.New()
	require.NoError(t, reg.Register("identified", identified))

	assert.True(t, reg.Unregister("IDENTIFIED"))
	assert.False(t, reg.Unregister("identified"), "second removal reports absence")
	assert.Equal(t, 0, reg.Len())

	// Removal frees the token for re-registration.
	assert.NoError(t, reg.Register("identified", contactable))
}

func TestRegistry_TokensSorted(t *testing.T) {
	reg := traitregistry.New()
	require.NoError(t, reg.Register("zeta", identified))
	require.NoError(t, reg.Register("alpha", contactable))
	require.NoError(t, reg.Register("mid", timestamped))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Tokens())
}

func TestRegistry_Matching(t *testing.T) {
	reg := traitregistry.New()
	require.NoError(t, reg.Register("identified", identified))
	require.NoError(t, reg.Register("contactable", contactable))
	require.NoError(t, reg.Register("timestamped", timestamped))

	type account struct {
		ID    int
		Email string
	}

	matched, err := reg.Matching(account{ID: 1, Email: "a"}, traitmatch.Pragmatic())
	require.NoError(t, err)
	assert.Equal(t, []string{"contactable", "identified"}, matched)
}

func TestRegistry_MatchingPropagatesErrors(t *testing.T) {
	reg := traitregistry.New()
	require.NoError(t, reg.Register("identified", identified))

	_, err := reg.Matching(42, traitmatch.Pragmatic())
	var normErr *traitmatch.NormalizationError
	assert.ErrorAs(t, err, &normErr)
}

func TestRegistry_WithMatcher(t *testing.T) {
	calls := 0
	stub := traitregistry.MatcherFunc(func(any, traitmatch.TraitSpec, traitmatch.TypeCompatPolicy) (bool, error) {
		calls++
		return true, nil
	})
	reg := traitregistry.New(traitregistry.WithMatcher(stub))
	require.NoError(t, reg.Register("identified", identified))
	require.NoError(t, reg.Register("timestamped", timestamped))

	matched, err := reg.Matching(struct{}{}, traitmatch.Strict())
	require.NoError(t, err)
	assert.Len(t, matched, 2)
	assert.Equal(t, 2, calls)
}

func TestRegistry_MatcherErrorStopsIteration(t *testing.T) {
	boom := errors.New("boom")
	stub := traitregistry.MatcherFunc(func(any, traitmatch.TraitSpec, traitmatch.TypeCompatPolicy) (bool, error) {
		return false, boom
	})
	reg := traitregistry.New(traitregistry.WithMatcher(stub))
	require.NoError(t, reg.Register("identified", identified))

	_, err := reg.Matching(struct{}{}, traitmatch.Strict())
	assert.ErrorIs(t, err, boom)
}
