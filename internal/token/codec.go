// Package token issues and validates the signed bearer tokens carried by
// API requests.
package token

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken indicates a malformed, unsigned, or expired token.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded token payload reduced to what the service uses.
type Claims struct {
	Subject string
	TokenID string
}

// Codec signs and verifies HS256 tokens. The subject claim carries the
// username; role is never encoded in the token, it is read fresh from the
// user store on every request.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec constructs a Codec with the given signing secret and token
// time-to-live.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// NewCodecAt is NewCodec with an injectable clock.
func NewCodecAt(secret string, ttl time.Duration, now func() time.Time) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl, now: now}
}

// Issue produces a signed token whose subject equals username.
func (c *Codec) Issue(username string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// ResolveBearer extracts the token from an Authorization: Bearer header.
// A missing or non-bearer header is reported as absent, not as an error;
// anonymous requests are a valid state.
func (c *Codec) ResolveBearer(header http.Header) (string, bool) {
	value := strings.TrimSpace(header.Get("Authorization"))
	if value == "" {
		return "", false
	}
	const prefix = "bearer "
	if !strings.HasPrefix(strings.ToLower(value), prefix) {
		return "", false
	}
	raw := strings.TrimSpace(value[len(prefix):])
	if raw == "" {
		return "", false
	}
	return raw, true
}

// Validate reports whether the token's signature verifies and its expiry
// has not passed. It fails closed: any parse error is false, never a panic.
func (c *Codec) Validate(raw string) bool {
	_, err := c.parse(raw)
	return err == nil
}

// Claims extracts the claims of a token. Callers must only invoke it after
// a successful Validate; it still returns ErrInvalidToken rather than
// undefined output when handed a bad token.
func (c *Codec) Claims(raw string) (Claims, error) {
	parsed, err := c.parse(raw)
	if err != nil {
		return Claims{}, err
	}
	return Claims{Subject: parsed.Subject, TokenID: parsed.ID}, nil
}

func (c *Codec) parse(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
