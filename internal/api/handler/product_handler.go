package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefront/commerce-api/internal/api/middleware"
	"github.com/storefront/commerce-api/internal/api/response"
	"github.com/storefront/commerce-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for the product catalogue.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// CreateProduct adds a product to the catalogue.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product"
// @Success      201   {object}  response.Envelope{object=productResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	req, err := middleware.Payload[createProductRequest](c)
	if err != nil {
		return err
	}

	product, err := h.service.CreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, "Product created successfully", toProductResponse(product))
}

// UpdateProduct applies a partial update to a product.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product ID"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope{object=productResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	req, err := middleware.Payload[updateProductRequest](c)
	if err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "Product updated successfully", toProductResponse(product))
}

// GetProduct returns a single product.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Envelope{object=productResponse}
// @Failure      404  {object}  response.Envelope
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.service.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "Product retrieved successfully", toProductResponse(product))
}

// DeleteProduct removes a product and returns the removed record.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Envelope{object=productResponse}
// @Failure      401  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	product, err := h.service.DeleteProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "Product deleted successfully", toProductResponse(product))
}

// ListProducts returns a page of products, newest first.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Page size (default 10, max 100)"
// @Param        pageSize  query     int     false  "Alias of limit"
// @Param        search    query     string  false  "Case-insensitive name filter"
// @Success      200       {object}  response.Envelope{object=productListResponse}
// @Failure      500       {object}  response.Envelope
// @Router       /products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	limit := c.QueryParam("limit")
	if limit == "" {
		limit = c.QueryParam("pageSize")
	}

	page, err := h.service.ListProducts(c.Request().Context(), ports.ListProductsInput{
		Page:   queryInt(c.QueryParam("page")),
		Limit:  queryInt(limit),
		Search: strings.TrimSpace(c.QueryParam("search")),
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "Products retrieved successfully", toProductListResponse(page))
}

// queryInt returns 0 for absent or malformed values so the service applies
// its defaults.
func queryInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// Mount registers the product routes on g. Writes run body validation
// before the guard chain; reads are public.
func (h *ProductHandler) Mount(g *echo.Group, guard ...echo.MiddlewareFunc) {
	g.GET("", h.ListProducts)
	g.GET("/:id", h.GetProduct)
	g.POST("", h.CreateProduct, pipeline(middleware.Validate[createProductRequest](), guard)...)
	g.PUT("/:id", h.UpdateProduct, pipeline(middleware.Validate[updateProductRequest](), guard)...)
	g.DELETE("/:id", h.DeleteProduct, guard...)
}

func pipeline(first echo.MiddlewareFunc, rest []echo.MiddlewareFunc) []echo.MiddlewareFunc {
	return append([]echo.MiddlewareFunc{first}, rest...)
}
