// Package auth issues the bearer tokens tying a caller to the wizard
// session it created. The token is an opaque session handle, not an
// identity: there is no user database behind it.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("invalid session token")
	ErrWrongSession   = errors.New("token does not belong to this session")
	ErrMissingSubject = errors.New("token has no session subject")
)

// NewToken signs a token for a session id, valid for ttl.
func NewToken(secret []byte, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyToken checks the signature and expiry and returns the session id.
func VerifyToken(secret []byte, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}

// Authorize verifies the token and checks it was issued for the session.
func Authorize(secret []byte, tokenString, sessionID string) error {
	sub, err := VerifyToken(secret, tokenString)
	if err != nil {
		return err
	}
	if sub != sessionID {
		return ErrWrongSession
	}
	return nil
}
