// Package auth reads the access token issued by the external auth service.
// The storefront never issues tokens for real users; it only needs to know
// who is shopping and whether they may use the admin routes.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessCookie = "accessToken"
	RoleAdmin    = "admin"
)

type AccessClaims struct {
	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

func AccessClaimsFromToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}

// NewAccessToken signs an HS256 access token. Used by tests and local tooling.
func NewAccessToken(subject, username, role string, exp time.Time, secret []byte) (string, error) {
	claims := AccessClaims{
		Role:     role,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// User is the read-only view of whoever is shopping.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Guest    bool   `json:"guest"`
}

func (u User) IsAdmin() bool {
	return !u.Guest && u.Role == RoleAdmin
}
