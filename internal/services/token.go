package services

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session payload. It has no exp claim: a token
// stays valid until the signing secret changes.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Validate runs after signature and registered-claim checks in every parser,
// including the guard middleware's.
func (c *Claims) Validate() error {
	if c.Username == "" {
		return errors.New("token has no username")
	}
	return nil
}

// TokenIssuer signs and verifies HS256 session tokens with one secret for
// the lifetime of the process.
type TokenIssuer struct {
	secret []byte
	parser *jwt.Parser
}

func NewTokenIssuer(secret []byte) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}
	return &TokenIssuer{
		secret: secret,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

// Issue is deterministic: the same claims and secret always yield the same token.
func (i *TokenIssuer) Issue(username, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Username: username,
		Role:     role,
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := i.parser.ParseWithClaims(tokenString, claims, i.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Keyfunc returns the signing secret for HS256 tokens and rejects any other
// algorithm. The guard middleware verifies through it as well.
func (i *TokenIssuer) Keyfunc(t *jwt.Token) (interface{}, error) {
	if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return i.secret, nil
}
