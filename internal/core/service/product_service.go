package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
	"github.com/storefront/commerce-api/internal/pkg/metrics"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type ProductService struct {
	repo   ports.ProductRepository
	events ports.EventSink
	logger zerolog.Logger
}

// NewProductService builds a ProductService. events may be nil.
func NewProductService(repo ports.ProductRepository, events ports.EventSink, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, events: events, logger: logger}
}

// CreateProduct stores a new product with fresh timestamps.
func (s *ProductService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, fmt.Errorf("create product: %w", err)
	}

	metrics.ProductWritesTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("product_id", product.ID).Str("category", product.Category).Msg("product created")
	emit(s.events, domain.SubjectProductCreated, product.ID, product)

	return product, nil
}

// UpdateProduct applies a partial update and refreshes updatedAt.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if patch.Empty() {
		return nil, domain.ErrEmptyPatch
	}

	product, err := s.repo.Update(ctx, id, patch, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	metrics.ProductWritesTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("product_id", product.ID).Msg("product updated")
	emit(s.events, domain.SubjectProductUpdated, product.ID, product)

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a product and returns the deleted record.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}

	metrics.ProductWritesTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("product_id", product.ID).Msg("product deleted")
	emit(s.events, domain.SubjectProductDeleted, product.ID, product)

	return product, nil
}

// ListProducts returns one page of products, newest first.
func (s *ProductService) ListProducts(ctx context.Context, input ports.ListProductsInput) (*ports.ProductPage, error) {
	page := input.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	// Keep (page-1)*limit, the repository offset, from overflowing.
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	products, total, err := s.repo.List(ctx, ports.ListProductsFilter{
		Search: input.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []*domain.Product{}
	}

	return &ports.ProductPage{
		Products:   products,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// totalPages is ceil(total/limit), never less than 1.
func totalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
