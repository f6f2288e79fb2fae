package ports

import (
	"context"
	"time"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// ListProductsFilter carries the query parameters for listing products.
type ListProductsFilter struct {
	Search string // case-insensitive substring on name; empty = no filter
	Page   int    // 1-based
	Limit  int
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	// Update applies patch and returns the stored record after the change.
	Update(ctx context.Context, id string, patch domain.ProductPatch, updatedAt time.Time) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// Delete removes the product and returns the record as it was.
	Delete(ctx context.Context, id string) (*domain.Product, error)
	// List returns a page of products matching filter, newest first, and the total count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
}
