package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/api/response"
	"github.com/storefront/commerce-api/internal/api/validation"
	"github.com/storefront/commerce-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders pipeline rejections and validation failures as they are.
//   - Maps known domain errors to their HTTP status and message.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		rejection := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(rejection.Status)
			return
		}
		_ = c.JSON(rejection.Status, rejection.Envelope())
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) *response.Error {
	var rejection *response.Error
	if errors.As(err, &rejection) {
		return rejection
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return response.ValidationFailed(verrs...)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return response.BadRequest("Username already taken")
	case errors.Is(err, domain.ErrEmailTaken):
		return response.BadRequest("Email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.NewError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrInvalidToken):
		return response.Unauthorized("Invalid or expired token")
	case errors.Is(err, domain.ErrTooManyAttempts):
		return response.TooManyRequests("Too many login attempts")
	case errors.Is(err, domain.ErrProductNotFound):
		return response.NotFound("Product not found")
	case errors.Is(err, domain.ErrEmptyPatch):
		return response.ValidationFailed("At least one field must be provided")
	}

	// Echo's own errors (unknown route, method not allowed, ...).
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		}
		return response.NewError(he.Code, msg)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", requestID(c)).
		Msg("unhandled error")

	return response.ServerError()
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
