package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLength(t *testing.T) {
	p, err := Generate(16)
	require.NoError(t, err)
	assert.Len(t, p, 16)
}

func TestGenerateDefaultsOnBadLength(t *testing.T) {
	for _, n := range []int{0, -5} {
		p, err := Generate(n)
		require.NoError(t, err)
		assert.Len(t, p, DefaultLength)
	}
}

func TestGenerateAlphabet(t *testing.T) {
	p, err := Generate(64)
	require.NoError(t, err)
	for _, c := range p {
		assert.True(t, strings.ContainsRune(alphabet, c), "character %q outside the allowed set", c)
	}
}

func TestGenerateIsRandom(t *testing.T) {
	a, err := Generate(24)
	require.NoError(t, err)
	b, err := Generate(24)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "two generated passwords must not collide")
}
