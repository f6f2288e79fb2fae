package ports

import (
	"context"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
	// Create stores a new user. Unique violations are reported as
	// domain.ErrUsernameTaken, domain.ErrEmailTaken or domain.ErrAdminExists.
	Create(ctx context.Context, user *domain.User) error
}
