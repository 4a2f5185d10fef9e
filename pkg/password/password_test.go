package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("Sup3r$ecret")
	require.NoError(t, err)

	assert.NotEqual(t, "Sup3r$ecret", hash)
	assert.True(t, Compare(hash, "Sup3r$ecret"))
	assert.False(t, Compare(hash, "wrong"))
	assert.False(t, Compare("", "Sup3r$ecret"))
}

func TestNewResetToken(t *testing.T) {
	plain, digest, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, plain, 40)
	assert.Len(t, digest, 64)
	assert.Equal(t, digest, DigestResetToken(plain))

	other, _, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, plain, other)
}
