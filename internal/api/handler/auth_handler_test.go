package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gympulse/gym-management-api/internal/api"
	"github.com/gympulse/gym-management-api/internal/api/handler"
	"github.com/gympulse/gym-management-api/internal/core/domain"
	"github.com/gympulse/gym-management-api/internal/core/ports"
)

// stubAuthService scripts the workflow layer so handler tests can focus on
// HTTP shape and error mapping.
type stubAuthService struct {
	loginErr    error
	registerErr error
	refreshErr  error
	migrateErr  error
	valid       bool
	migrated    int
	result      *ports.AuthResult
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.AuthResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.result, nil
}

func (s *stubAuthService) Register(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.result, nil
}

func (s *stubAuthService) RefreshToken(context.Context, string) (*ports.AuthResult, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return s.result, nil
}

func (s *stubAuthService) ValidateToken(context.Context, string) bool {
	return s.valid
}

func (s *stubAuthService) MigrateCredentials(context.Context) (int, error) {
	if s.migrateErr != nil {
		return 0, s.migrateErr
	}
	return s.migrated, nil
}

func authResultFixture() *ports.AuthResult {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &ports.AuthResult{
		Token:        "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    86400,
		User: &domain.User{
			ID:       1,
			Username: "alice",
			Email:    "alice@gym.test",
			Role:     domain.RoleManager,
			IsActive: true,
		},
		IssuedAt:  now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

func doRequest(t *testing.T, svc ports.AuthService, route func(*handler.AuthHandler) echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := route(handler.NewAuthHandler(svc))(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func loginRoute(h *handler.AuthHandler) echo.HandlerFunc    { return h.Login }
func registerRoute(h *handler.AuthHandler) echo.HandlerFunc { return h.Register }
func refreshRoute(h *handler.AuthHandler) echo.HandlerFunc  { return h.Refresh }
func validateRoute(h *handler.AuthHandler) echo.HandlerFunc { return h.Validate }
func migrateRoute(h *handler.AuthHandler) echo.HandlerFunc  { return h.EncryptPasswords }

func TestLogin_Success(t *testing.T) {
	svc := &stubAuthService{result: authResultFixture()}
	rec := doRequest(t, svc, loginRoute, `{"username":"alice","password":"pw12345678"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ports.AuthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "access-token" || resp.TokenType != "Bearer" {
		t.Fatalf("unexpected token envelope: %+v", resp)
	}
	if resp.User == nil || resp.User.Username != "alice" {
		t.Fatalf("expected user snapshot in response, got %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "passwordHash") {
		t.Fatalf("response leaked the password hash field")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	rec := doRequest(t, svc, loginRoute, `{"username":"alice","password":"wrong"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrUserInactive}
	rec := doRequest(t, svc, loginRoute, `{"username":"bob","password":"pw12345678"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc := &stubAuthService{result: authResultFixture()}
	rec := doRequest(t, svc, loginRoute, `{"username":"alice"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegister_Created(t *testing.T) {
	svc := &stubAuthService{result: authResultFixture()}
	body := `{"username":"alice","email":"alice@gym.test","password":"pw12345678","firstName":"Alice","lastName":"Smith","role":"MANAGER"}`
	rec := doRequest(t, svc, registerRoute, body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrDuplicateUsername}
	body := `{"username":"alice","email":"alice@gym.test","password":"pw12345678","firstName":"Alice","lastName":"Smith","role":"MANAGER"}`
	rec := doRequest(t, svc, registerRoute, body)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "username already exists") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestRegister_InvalidRole(t *testing.T) {
	svc := &stubAuthService{result: authResultFixture()}
	body := `{"username":"alice","email":"alice@gym.test","password":"pw12345678","firstName":"Alice","lastName":"Smith","role":"JANITOR"}`
	rec := doRequest(t, svc, registerRoute, body)

	// Rejected by request validation before the service runs.
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRefresh_Success(t *testing.T) {
	svc := &stubAuthService{result: authResultFixture()}
	rec := doRequest(t, svc, refreshRoute, `{"refreshToken":"refresh-token"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ports.AuthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RefreshToken != "refresh-token" {
		t.Fatalf("expected the presented refresh token back, got %q", resp.RefreshToken)
	}
}

func TestRefresh_InvalidToken(t *testing.T) {
	svc := &stubAuthService{refreshErr: domain.ErrInvalidToken}
	rec := doRequest(t, svc, refreshRoute, `{"refreshToken":"expired"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid token") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestValidate_AlwaysAnswers200(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
		body  string
		want  bool
	}{
		{"valid token", true, `{"token":"good"}`, true},
		{"invalid token", false, `{"token":"bad"}`, false},
		{"unreadable payload", true, `{not json`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubAuthService{valid: tc.valid}
			rec := doRequest(t, svc, validateRoute, tc.body)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			var resp struct {
				Valid bool `json:"valid"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Valid != tc.want {
				t.Fatalf("expected valid=%v, got %v", tc.want, resp.Valid)
			}
		})
	}
}

func TestEncryptPasswords_Success(t *testing.T) {
	svc := &stubAuthService{migrated: 3}
	rec := doRequest(t, svc, migrateRoute, `{}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Message  string `json:"message"`
		Migrated int    `json:"migrated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Migrated != 3 || resp.Message == "" {
		t.Fatalf("unexpected migrate response: %+v", resp)
	}
}

func TestEncryptPasswords_AlreadyRunning(t *testing.T) {
	svc := &stubAuthService{migrateErr: domain.ErrMigrationRunning}
	rec := doRequest(t, svc, migrateRoute, `{}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
