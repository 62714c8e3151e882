package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "gymlog"
	tokenAudience = "gymlog-api"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenIssuer signs and verifies HS256 access tokens whose subject is the username.
// The secret and lifetime are fixed at construction.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns an issuer signing with secret and tokens valid for expiry.
func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Issue creates a signed token bound to username.
func (i *TokenIssuer) Issue(username string) (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks signature, issuer, audience and expiry and returns the subject.
// Every failure collapses into ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
