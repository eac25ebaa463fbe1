// Package tokens implements the signed-claims codec used for API
// authentication: compact HS256 tokens carrying a subject id, a kind
// discriminator (access vs refresh) and an absolute expiry.
package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind discriminates short-lived access tokens from long-lived refresh
// tokens. The two are never interchangeable.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims is the decoded payload of a token. Subject is always the string
// form of the principal id, regardless of its native key type.
type Claims struct {
	Kind Kind `json:"type"`
	jwt.RegisteredClaims
}

// Codec issues and verifies tokens with a process-wide symmetric secret.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

const (
	defaultAccessTTL  = 30 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// NewCodec builds a Codec. Non-positive TTLs fall back to the defaults
// (access 30m, refresh 7d).
func NewCodec(secret string, accessTTL, refreshTTL time.Duration) *Codec {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// TTL returns the configured lifetime for the given kind.
func (c *Codec) TTL(kind Kind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue signs a token of the given kind for subject, expiring after the
// kind's configured TTL.
func (c *Codec) Issue(subject string, kind Kind) (string, error) {
	return c.IssueWithTTL(subject, kind, c.TTL(kind))
}

// IssueWithTTL signs a token with an explicit lifetime.
func (c *Codec) IssueWithTTL(subject string, kind Kind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// IssuePair signs a fresh access+refresh pair for the same subject.
func (c *Codec) IssuePair(subject string) (access, refresh string, err error) {
	if access, err = c.Issue(subject, KindAccess); err != nil {
		return "", "", err
	}
	if refresh, err = c.Issue(subject, KindRefresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Verify decodes raw and reports whether it is a currently valid token
// signed by this codec. A malformed token, a signature mismatch and an
// expired token all collapse into the single (nil, false) outcome; callers
// must not distinguish the failure causes.
func (c *Codec) Verify(raw string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
