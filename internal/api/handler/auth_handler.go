package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/commerce-api/internal/api/middleware"
	"github.com/storefront/commerce-api/internal/api/response"
	"github.com/storefront/commerce-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account. The first account becomes Admin.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  response.Envelope{object=userResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	req, err := middleware.Payload[registerRequest](c)
	if err != nil {
		return err
	}

	identity, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: deref(req.Username),
		Email:    deref(req.Email),
		Password: deref(req.Password),
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, "User registered successfully", toUserResponse(identity))
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope{object=loginResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      429   {object}  response.Envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	req, err := middleware.Payload[loginRequest](c)
	if err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), deref(req.Email), deref(req.Password))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "Login successful", loginResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

// Mount registers the auth routes on g.
func (h *AuthHandler) Mount(g *echo.Group) {
	g.POST("/register", h.Register, middleware.Validate[registerRequest]())
	g.POST("/login", h.Login, middleware.Validate[loginRequest]())
}
