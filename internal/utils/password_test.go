package utils

import (
	"net/http"
	"strings"
	"testing"

	"github.com/harentsoaR/clinic-api/internal/exceptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	defer func(c int) { passwordCost = c }(passwordCost)
	passwordCost = bcrypt.MinCost

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("battery staple", hash))
	assert.False(t, CheckPasswordHash("correct horse", ""))
}

func TestHashPasswordRejectsOverlongInput(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestParseObjectID(t *testing.T) {
	id, err := ParseObjectID("64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", id.Hex())

	_, err = ParseObjectID("not-an-id")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, exceptions.As(err).StatusCode)
}
