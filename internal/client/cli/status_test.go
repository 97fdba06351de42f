package cli

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenExpiry_JWTWithExp(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("irrelevant-key"))
	require.NoError(t, err)

	got, ok := tokenExpiry(signed)
	require.True(t, ok)
	assert.Equal(t, exp.Unix(), got.Unix())
}

func TestTokenExpiry_JWTWithoutExp(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7"})
	signed, err := token.SignedString([]byte("irrelevant-key"))
	require.NoError(t, err)

	_, ok := tokenExpiry(signed)
	assert.False(t, ok)
}

func TestTokenExpiry_OpaqueToken(t *testing.T) {
	_, ok := tokenExpiry("AF83-2291-BB10")
	assert.False(t, ok)
}
