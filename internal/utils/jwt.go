// Package utils provides token signing/verification and password hashing.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failure kinds. Callers that do not care about the
// distinction can treat everything except ErrTokenExpired alike.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenInvalid   = errors.New("token invalid")
)

// Claims is the payload embedded in every signed token: the user
// identifier plus the registered expiry/issued-at claims. Nothing else
// is carried; tokens are not persisted server-side except for refresh
// tokens recorded in the ledger.
type Claims struct {
	jwt.RegisteredClaims
	ID string `json:"id"`
}

// SignedToken is a serialized HS256 JWT together with its expiry.
type SignedToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // UTC expiration time
}

// NewToken builds and signs an HS256 JWT for a user. Access and refresh
// tokens use the same shape but independent secrets and TTLs, so a token
// of one class never verifies as the other.
func NewToken(secret, userID string, ttl time.Duration) (SignedToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	// The jti claim makes every token unique even when two are minted
	// within the same second; refresh rotation relies on the superseded
	// token differing from its successor.
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		ID: userID,
	})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Token: signed, Exp: exp}, nil
}

// ParseToken verifies a token against the given secret and returns the
// user identifier claim. Failures map to ErrTokenExpired,
// ErrTokenMalformed or ErrTokenInvalid (bad signature, wrong algorithm,
// missing identity claim).
func ParseToken(raw, secret string) (string, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", ErrTokenMalformed
	case err != nil:
		return "", ErrTokenInvalid
	}
	if !tok.Valid || claims.ID == "" {
		return "", ErrTokenInvalid
	}
	return claims.ID, nil
}
