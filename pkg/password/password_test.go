package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/attendance-api/pkg/password"
)

func TestHashAndMatches(t *testing.T) {
	hash, err := password.Hash("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash, "nunca se guarda el texto plano")

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	ok, err := password.Matches(hash, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = password.Matches(hash, "otra")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHash_DefaultCost(t *testing.T) {
	hash, err := password.Hash("x", 0)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, password.DefaultCost, cost)
}

func TestHash_TooLong(t *testing.T) {
	_, err := password.Hash(strings.Repeat("a", 73), bcrypt.MinCost)
	assert.ErrorIs(t, err, password.ErrTooLong)
}

func TestMatches_CorruptHash(t *testing.T) {
	_, err := password.Matches("no-es-bcrypt", "x")
	assert.Error(t, err)
}
