package ports

import (
	"context"

	"github.com/storefront/commerce-api/internal/core/domain"
)

// CreateProductInput carries a validated, normalized product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
}

// ListProductsInput carries the parameters for the list endpoint.
type ListProductsInput struct {
	Page   int
	Limit  int
	Search string
}

// ProductPage is returned by ListProducts.
type ProductPage struct {
	Products   []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService defines use-case operations for products.
type ProductService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductPage, error)
}
