// Package auth implements the signed bearer-token codec.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is the uniform failure for malformed, expired and
	// badly signed tokens. Callers never learn which check failed.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMisconfigured indicates an unusable signing configuration.
	ErrMisconfigured = errors.New("jwt config invalid")
)

// Codec issues and validates HMAC-signed access tokens carrying a subject
// claim. The secret and signing method are fixed at construction.
type Codec struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	defaultTTL time.Duration

	now func() time.Time
}

func NewCodec(secret, algorithm string, defaultTTL time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	if defaultTTL <= 0 {
		return nil, fmt.Errorf("%w: default token lifetime must be positive", ErrMisconfigured)
	}

	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("%w: unsupported signing algorithm %q", ErrMisconfigured, algorithm)
	}

	return &Codec{
		secret:     []byte(secret),
		method:     method,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}, nil
}

// Issue signs a token for subject. A non-positive ttl uses the configured
// default lifetime.
func (c *Codec) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Decode verifies the token signature, subject presence and expiry, in that
// order, and returns the subject. Every failure is ErrInvalidToken.
func (c *Codec) Decode(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
