package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSignerRoundTrip(t *testing.T) {
	s := NewTokenSigner("secret", 0)

	token, err := s.Sign("doctor-1")
	require.NoError(t, err)

	id, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "doctor-1", id)
}

func TestTokenSignerNoExpiryByDefault(t *testing.T) {
	s := NewTokenSigner("secret", 0)
	token, err := s.Sign("doctor-1")
	require.NoError(t, err)

	claims := &TokenClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
	assert.NotNil(t, claims.IssuedAt)
}

func TestTokenSignerRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenSigner("secret", 0).Sign("doctor-1")
	require.NoError(t, err)

	_, err = NewTokenSigner("other", 0).Verify(token)
	assert.Error(t, err)
}

func TestTokenSignerRejectsMalformed(t *testing.T) {
	s := NewTokenSigner("secret", 0)
	for _, tok := range []string{"", "abc", "a.b.c"} {
		_, err := s.Verify(tok)
		assert.Error(t, err, tok)
	}
}

func TestTokenSignerRejectsNoneAlgorithm(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "doctor-1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenSigner("secret", 0).Verify(unsigned)
	assert.Error(t, err)
}

func TestTokenSignerExpiry(t *testing.T) {
	s := NewTokenSigner("secret", time.Hour)
	issued := time.Now()
	s.now = func() time.Time { return issued }

	token, err := s.Sign("doctor-1")
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
