package ports

import (
	"context"
	"time"

	"github.com/gympulse/gym-management-api/internal/core/domain"
)

// RegisterInput carries the fields required to create a new staff account.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      string
}

// AuthResult is the outcome of a successful login, registration, or refresh.
// RefreshToken is the long-lived token; Token is the access token.
type AuthResult struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int64        `json:"expiresIn"`
	User         *domain.User `json:"user"`
	IssuedAt     time.Time    `json:"issuedAt"`
	ExpiresAt    time.Time    `json:"expiresAt"`
}

// AuthService orchestrates the stateless session workflow.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	// ValidateToken never returns an error; any failure yields false.
	ValidateToken(ctx context.Context, token string) bool
	// MigrateCredentials re-hashes stored plaintext credentials and returns
	// the number migrated. Idempotent; serialized via a single-flight lock.
	MigrateCredentials(ctx context.Context) (int, error)
}
