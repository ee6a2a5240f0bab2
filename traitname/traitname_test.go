package traitname_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traitmatch/traitmatch-go/traitname"
)

func TestParse_NameOnly(t *testing.T) {
	token, err := traitname.Parse("Timestamped")
	require.NoError(t, err)
	assert.Equal(t, "timestamped", token.Name)
	assert.Empty(t, token.Version)
	assert.Equal(t, "timestamped", token.String())
}

func TestParse_NameAndVersion(t *testing.T) {
	token, err := traitname.Parse("User@1.2.0")
	require.NoError(t, err)
	assert.Equal(t, "user", token.Name)
	assert.Equal(t, "1.2.0", token.Version)
	assert.Equal(t, "user@1.2.0", token.String())
}

func TestParse_VersionCasePreserved(t *testing.T) {
	token, err := traitname.Parse("Shape@V2")
	require.NoError(t, err)
	assert.Equal(t, "shape", token.Name)
	assert.Equal(t, "V2", token.Version)
}

func TestParse_TrimsWhitespace(t *testing.T) {
	token, err := traitname.Parse("  user  ")
	require.NoError(t, err)
	assert.Equal(t, "user", token.Name)
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{
		"",
		"@1.0",
		"user@",
		"-user",
		".user",
		"user@@1",
		"user name",
		"user@1 0",
	} {
		_, err := traitname.Parse(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestIsTraitToken(t *testing.T) {
	assert.True(t, traitname.IsTraitToken("user"))
	assert.True(t, traitname.IsTraitToken("user@2"))
	assert.True(t, traitname.IsTraitToken("user.v2-beta_x"))
	assert.False(t, traitname.IsTraitToken(""))
	assert.False(t, traitname.IsTraitToken("user@"))
}

func TestNormalize(t *testing.T) {
	got, err := traitname.Normalize("  User@1.0 ")
	require.NoError(t, err)
	assert.Equal(t, "user@1.0", got)

	_, err = traitname.Normalize("@bad")
	assert.Error(t, err)
}

func TestToken_StringZeroValue(t *testing.T) {
	assert.Empty(t, traitname.Token{}.String())
}
