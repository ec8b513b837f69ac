// Package auth implements the authentication core: bcrypt password hashing
// and HS256 bearer-token issuance/verification.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/courseboard/server/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated user triple embedded in every token and
// attached to the request context after verification.
type Identity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Claims carries the standard registered claims plus the custom "user"
// payload, matching the wire shape consumed by existing clients.
type Claims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

// Issuer mints signed, time-limited bearer tokens. The signing secret is
// injected once at construction; an absent secret is a configuration error
// surfaced at startup, never per request.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty signing secret", common.ErrServerMisconfigured)
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue returns a signed token for the identity, valid for the configured
// lifetime from now.
func (i *Issuer) Issue(identity Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verifier validates inbound tokens and extracts the identity claims.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty signing secret", common.ErrServerMisconfigured)
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// Verify checks the token's signature and expiry and returns the embedded
// identity. Failures map onto the sentinel taxonomy:
//
//	expired            -> common.ErrTokenExpired
//	bad signature      -> common.ErrInvalidToken
//	anything else      -> common.ErrAuthorization
//
// Verification is pure computation: no I/O, no caching, no revocation list.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrInvalidToken
		default:
			return nil, common.ErrAuthorization
		}
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &claims.User, nil
}
