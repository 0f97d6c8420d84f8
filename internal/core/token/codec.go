// Package token implements the signed-token codec used for access and
// refresh tokens. Tokens are HS256 JWTs carrying the username as subject and
// an optional role claim. The signing key is fixed for the lifetime of the
// process; rotating it requires a restart.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gympulse/gym-management-api/internal/core/domain"
)

const (
	defaultAccessTTL  = 24 * time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the payload encoded into every token issued by the codec.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Config captures the codec settings loaded once at startup.
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Codec issues and verifies signed, expiring tokens. It holds no mutable
// state and is safe for concurrent use.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec builds a Codec from cfg, applying default TTLs when unset.
func NewCodec(cfg Config) *Codec {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &Codec{
		secret:     []byte(cfg.Secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the configured access-token lifetime.
func (c *Codec) AccessTTL() time.Duration {
	return c.accessTTL
}

// IssueAccess mints a short-lived access token embedding the role claim.
func (c *Codec) IssueAccess(username, role string) (string, error) {
	return c.issue(username, role, c.accessTTL)
}

// IssueRefresh mints a long-lived refresh token. Refresh tokens carry no
// role claim; the role is re-read from the identity store on refresh.
func (c *Codec) IssueRefresh(username string) (string, error) {
	return c.issue(username, "", c.refreshTTL)
}

func (c *Codec) issue(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode parses tokenString, verifies its signature and expiry, and returns
// the claims. Any failure (bad structure, wrong signature, expired) maps to
// domain.ErrTokenMalformed so callers can treat it uniformly as
// "unauthenticated".
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenMalformed, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenMalformed
	}
	return claims, nil
}

// IsExpired reports whether tokenString has passed its expiry. A token that
// cannot be parsed at all is treated as expired (fail closed). The expiry
// instant itself counts as expired.
func (c *Codec) IsExpired(tokenString string) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := &Claims{}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return !time.Now().Before(claims.ExpiresAt.Time)
}

// IsValid reports whether tokenString decodes cleanly, is unexpired, and was
// issued for expectedSubject.
func (c *Codec) IsValid(tokenString, expectedSubject string) bool {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}

// Expired reports whether err stems from token expiry rather than a
// structural or signature problem.
func Expired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
