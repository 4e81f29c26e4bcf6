package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SignHS256 mints an HS256 token. Production tokens come from the hosted
// auth provider; this is used by tests and the admin tooling.
func SignHS256(secret []byte, c Claims) (string, error) {
	if len(secret) == 0 {
		return "", ErrNoSecret
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	s, err := tok.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return s, nil
}
