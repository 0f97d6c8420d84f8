package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gympulse/gym-management-api/internal/core/domain"
	"github.com/gympulse/gym-management-api/internal/core/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(context.Context, int64) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (r *stubUserRepo) ExistsByEmail(context.Context, string) (bool, error)   { return false, nil }
func (r *stubUserRepo) List(context.Context) ([]*domain.User, error)          { return nil, nil }
func (r *stubUserRepo) UpdateLastLogin(context.Context, int64, time.Time) error {
	return nil
}
func (r *stubUserRepo) UpdatePassword(context.Context, int64, string) error { return nil }
func (r *stubUserRepo) SetActive(context.Context, int64, bool) error        { return nil }

func gateFixture(t *testing.T) (*token.Codec, *stubUserRepo) {
	t.Helper()
	codec := token.NewCodec(token.Config{Secret: "secret", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour})
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice": {ID: 1, Username: "alice", Role: domain.RoleManager, IsActive: true},
		"frank": {ID: 2, Username: "frank", Role: domain.RoleAdmin, IsActive: false},
	}}
	return codec, repo
}

// runGate sends a request through the Auth middleware into a probe handler
// and returns what the handler observed on the context.
func runGate(t *testing.T, codec *token.Codec, repo *stubUserRepo, publicPaths []string, path, authHeader string) (username, role string, called bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(codec, repo, publicPaths, zerolog.Nop())(func(c echo.Context) error {
		called = true
		username, _ = c.Get(CtxUsername).(string)
		role, _ = c.Get(CtxRole).(string)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("gate returned error: %v", err)
	}
	return username, role, called
}

func TestAuth_ValidToken(t *testing.T) {
	codec, repo := gateFixture(t)
	tok, err := codec.IssueAccess("alice", domain.RoleManager)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	username, role, called := runGate(t, codec, repo, nil, "/members", "Bearer "+tok)
	if !called {
		t.Fatalf("handler not reached")
	}
	if username != "alice" || role != domain.RoleManager {
		t.Fatalf("expected authenticated claims, got username=%q role=%q", username, role)
	}
}

func TestAuth_MissingHeaderForwardsUnauthenticated(t *testing.T) {
	codec, repo := gateFixture(t)

	username, role, called := runGate(t, codec, repo, nil, "/members", "")
	if !called {
		t.Fatalf("handler not reached")
	}
	if username != "" || role != "" {
		t.Fatalf("expected no claims, got username=%q role=%q", username, role)
	}
}

func TestAuth_InvalidTokenForwardsUnauthenticated(t *testing.T) {
	codec, repo := gateFixture(t)

	for _, header := range []string{
		"Bearer not-a-token",
		"Basic dXNlcjpwdw==",
		"Bearer",
	} {
		username, role, called := runGate(t, codec, repo, nil, "/members", header)
		if !called {
			t.Fatalf("handler not reached for header %q", header)
		}
		if username != "" || role != "" {
			t.Fatalf("expected no claims for header %q, got username=%q role=%q", header, username, role)
		}
	}
}

func TestAuth_UnknownSubjectForwardsUnauthenticated(t *testing.T) {
	codec, repo := gateFixture(t)
	tok, err := codec.IssueAccess("ghost", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	username, _, called := runGate(t, codec, repo, nil, "/members", "Bearer "+tok)
	if !called {
		t.Fatalf("handler not reached")
	}
	if username != "" {
		t.Fatalf("expected no claims for unknown subject, got %q", username)
	}
}

func TestAuth_InactiveUserForwardsUnauthenticated(t *testing.T) {
	codec, repo := gateFixture(t)
	tok, err := codec.IssueAccess("frank", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	username, _, called := runGate(t, codec, repo, nil, "/members", "Bearer "+tok)
	if !called {
		t.Fatalf("handler not reached")
	}
	if username != "" {
		t.Fatalf("expected no claims for inactive account, got %q", username)
	}
}

func TestAuth_PublicPathSkipsGate(t *testing.T) {
	codec, repo := gateFixture(t)

	// A garbage bearer token on a public path is ignored entirely.
	_, _, called := runGate(t, codec, repo, []string{"/auth", "/health"}, "/auth/login", "Bearer garbage")
	if !called {
		t.Fatalf("handler not reached on public path")
	}
	_, _, called = runGate(t, codec, repo, []string{"/auth", "/health"}, "/health/ready", "")
	if !called {
		t.Fatalf("handler not reached on public path")
	}
}
