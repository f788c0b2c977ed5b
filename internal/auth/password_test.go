package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	p := ArgonParams{Time: 1, Memory: 16 << 10, Threads: 1, SaltLen: 16, KeyLen: 32}
	phc, err := HashPassword("correct horse battery", p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(phc, "$argon2id$"))

	assert.True(t, VerifyPassword("correct horse battery", phc))
	assert.False(t, VerifyPassword("wrong", phc))
	assert.False(t, VerifyPassword("correct horse battery", "not-a-phc"))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	p := ArgonParams{Time: 1, Memory: 16 << 10, Threads: 1, SaltLen: 16, KeyLen: 32}
	a, err := HashPassword("pw", p)
	require.NoError(t, err)
	b, err := HashPassword("pw", p)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
