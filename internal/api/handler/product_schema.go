package handler

import (
	"time"

	"github.com/storefront/commerce-api/internal/api/validation"
	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

// --- Request / Response types ---

type createProductRequest struct {
	Name        *string           `json:"name"        validate:"required,min=3,max=100"           example:"Desk lamp"`
	Description *string           `json:"description" validate:"required,min=10"                  example:"LED lamp with adjustable arm"`
	Price       validation.Number `json:"price"       validate:"required,finite,gt=0"             swaggertype:"number" example:"19.99"`
	Stock       validation.Number `json:"stock"       validate:"required,finite,integer,min=0"    swaggertype:"integer" example:"5"`
	Category    *string           `json:"category"    validate:"required,min=1"                   example:"home"`
}

func (r *createProductRequest) Normalize() {
	trim(r.Name)
	trim(r.Description)
	trim(r.Category)
}

func (r *createProductRequest) toInput() ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:        deref(r.Name),
		Description: deref(r.Description),
		Price:       r.Price.Float(),
		Stock:       r.Stock.Int(),
		Category:    deref(r.Category),
	}
}

// updateProductRequest validates every supplied field; at least one is required.
type updateProductRequest struct {
	Name        *string           `json:"name,omitempty"        validate:"omitempty,min=3,max=100"`
	Description *string           `json:"description,omitempty" validate:"omitempty,min=10"`
	Price       validation.Number `json:"price,omitempty"       validate:"omitempty,finite,gt=0"          swaggertype:"number"`
	Stock       validation.Number `json:"stock,omitempty"       validate:"omitempty,finite,integer,min=0" swaggertype:"integer"`
	Category    *string           `json:"category,omitempty"    validate:"omitempty,min=1"`
}

func (r *updateProductRequest) Normalize() {
	trim(r.Name)
	trim(r.Description)
	trim(r.Category)
}

func (r *updateProductRequest) Rules() []string {
	if r.toPatch().Empty() {
		return []string{"At least one field must be provided"}
	}
	return nil
}

func (r *updateProductRequest) toPatch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price.FloatPtr(),
		Stock:       r.Stock.IntPtr(),
		Category:    r.Category,
	}
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type productListResponse struct {
	CurrentPage   int               `json:"currentPage"`
	PageSize      int               `json:"pageSize"`
	TotalPages    int               `json:"totalPages"`
	TotalProducts int64             `json:"totalProducts"`
	Products      []productResponse `json:"products"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductListResponse(page *ports.ProductPage) productListResponse {
	items := make([]productResponse, 0, len(page.Products))
	for _, p := range page.Products {
		items = append(items, toProductResponse(p))
	}
	return productListResponse{
		CurrentPage:   page.Page,
		PageSize:      page.Limit,
		TotalPages:    page.TotalPages,
		TotalProducts: page.Total,
		Products:      items,
	}
}
