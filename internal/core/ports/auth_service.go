package ports

import (
	"context"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// RegisterInput carries normalized registration data.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token string
	User  domain.Identity
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (domain.Identity, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// TokenService issues and verifies signed identity tokens.
type TokenService interface {
	Issue(identity domain.Identity) (string, error)
	Verify(token string) (domain.Identity, error)
}

// PasswordHasher hashes and compares secrets.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// LoginThrottle limits login attempts per key within a window.
type LoginThrottle interface {
	// Allow counts an attempt and reports whether it is within the limit.
	// Counting and checking happen in one step.
	Allow(ctx context.Context, key string) (bool, error)
	// Reset clears the count after a successful login.
	Reset(ctx context.Context, key string) error
}
