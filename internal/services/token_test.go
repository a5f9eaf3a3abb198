package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuer(t *testing.T, secret string) *TokenIssuer {
	t.Helper()
	i, err := NewTokenIssuer([]byte(secret))
	require.NoError(t, err)
	return i
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	i := newIssuer(t, "super-secret")

	tok, err := i.Issue("admin", "admin")
	require.NoError(t, err)

	claims, err := i.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Nil(t, claims.ExpiresAt, "session tokens carry no expiry")
}

func TestTokenIssuer_Deterministic(t *testing.T) {
	i := newIssuer(t, "super-secret")

	a, err := i.Issue("bob", "user")
	require.NoError(t, err)
	b, err := i.Issue("bob", "user")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTokenIssuer_EmptySecret(t *testing.T) {
	_, err := NewTokenIssuer(nil)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsAlteredToken(t *testing.T) {
	i := newIssuer(t, "super-secret")
	tok, err := i.Issue("admin", "admin")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	flip := func(s string, idx int) string {
		b := []byte(s)
		if b[idx] == 'A' {
			b[idx] = 'B'
		} else {
			b[idx] = 'A'
		}
		return string(b)
	}

	cases := map[string]string{
		"payload":   parts[0] + "." + flip(parts[1], len(parts[1])/2) + "." + parts[2],
		"signature": parts[0] + "." + parts[1] + "." + flip(parts[2], 0),
		"header":    flip(parts[0], 1) + "." + parts[1] + "." + parts[2],
	}
	for name, altered := range cases {
		t.Run(name, func(t *testing.T) {
			require.NotEqual(t, tok, altered)
			_, err := i.Verify(altered)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	tok, err := newIssuer(t, "right-secret").Issue("admin", "admin")
	require.NoError(t, err)

	_, err = newIssuer(t, "wrong-secret").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsMalformed(t *testing.T) {
	i := newIssuer(t, "k")
	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b.c.d"} {
		_, err := i.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	i := newIssuer(t, "super-secret")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "admin", Role: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = i.Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{Username: "admin", Role: "admin"}).
		SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = i.Verify(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsMissingUsername(t *testing.T) {
	i := newIssuer(t, "super-secret")

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Role: "admin"}).
		SignedString([]byte("super-secret"))
	require.NoError(t, err)

	_, err = i.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
