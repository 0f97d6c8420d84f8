package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gympulse/gym-management-api/internal/core/domain"
)

func testCodec() *Codec {
	return NewCodec(Config{
		Secret:     "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
}

// signRaw builds a token outside the codec so tests can control expiry and key.
func signRaw(t *testing.T, secret, subject, role string, issuedAt, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := testCodec()

	signed, err := codec.IssueAccess("alice", domain.RoleManager)
	if err != nil {
		t.Fatalf("IssueAccess returned error: %v", err)
	}

	claims, err := codec.Decode(signed)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("expected subject alice, got %q", claims.Subject)
	}
	if claims.Role != domain.RoleManager {
		t.Fatalf("expected role %s, got %q", domain.RoleManager, claims.Role)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("expected issued-at and expiry claims")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected 1h validity window, got %v", got)
	}
}

func TestCodec_RefreshTokenHasNoRole(t *testing.T) {
	codec := testCodec()

	signed, err := codec.IssueRefresh("alice")
	if err != nil {
		t.Fatalf("IssueRefresh returned error: %v", err)
	}

	claims, err := codec.Decode(signed)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if claims.Role != "" {
		t.Fatalf("refresh token should carry no role, got %q", claims.Role)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 24*time.Hour {
		t.Fatalf("expected 24h validity window, got %v", got)
	}
}

func TestCodec_Decode_Garbage(t *testing.T) {
	codec := testCodec()

	for _, tok := range []string{"", "not-a-token", "a.b.c", "   "} {
		if _, err := codec.Decode(tok); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("Decode(%q): expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}

func TestCodec_Decode_WrongKey(t *testing.T) {
	codec := testCodec()
	forged := signRaw(t, "other-secret", "alice", "", time.Now(), time.Now().Add(time.Hour))

	if _, err := codec.Decode(forged); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for wrong key, got %v", err)
	}
}

func TestCodec_Decode_Expired(t *testing.T) {
	codec := testCodec()
	expired := signRaw(t, "test-secret", "alice", "", time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))

	_, err := codec.Decode(expired)
	if !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for expired token, got %v", err)
	}
	if !Expired(err) {
		t.Fatalf("expected Expired(err) to be true, got false")
	}
}

func TestCodec_IsExpired(t *testing.T) {
	codec := testCodec()

	fresh, _ := codec.IssueAccess("alice", domain.RoleAdmin)
	if codec.IsExpired(fresh) {
		t.Fatalf("fresh token reported expired")
	}

	expired := signRaw(t, "test-secret", "alice", "", time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
	if !codec.IsExpired(expired) {
		t.Fatalf("expired token reported valid")
	}

	// Unreadable input fails closed.
	if !codec.IsExpired("garbage") {
		t.Fatalf("garbage token reported unexpired")
	}

	// The expiry instant itself counts as expired.
	boundary := signRaw(t, "test-secret", "alice", "", time.Now().Add(-time.Hour), time.Now())
	if !codec.IsExpired(boundary) {
		t.Fatalf("token at expiry instant reported unexpired")
	}
}

func TestCodec_IsValid(t *testing.T) {
	codec := testCodec()
	signed, _ := codec.IssueAccess("alice", domain.RoleAdmin)

	if !codec.IsValid(signed, "alice") {
		t.Fatalf("valid token rejected")
	}
	if codec.IsValid(signed, "bob") {
		t.Fatalf("token accepted for wrong subject")
	}
	if codec.IsValid("garbage", "alice") {
		t.Fatalf("garbage accepted")
	}

	expired := signRaw(t, "test-secret", "alice", "", time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
	if codec.IsValid(expired, "alice") {
		t.Fatalf("expired token accepted")
	}
}

func TestNewCodec_DefaultTTLs(t *testing.T) {
	codec := NewCodec(Config{Secret: "s"})
	if codec.AccessTTL() != defaultAccessTTL {
		t.Fatalf("expected default access TTL %v, got %v", defaultAccessTTL, codec.AccessTTL())
	}
	if codec.refreshTTL != defaultRefreshTTL {
		t.Fatalf("expected default refresh TTL %v, got %v", defaultRefreshTTL, codec.refreshTTL)
	}
}
