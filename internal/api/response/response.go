// Package response defines the JSON envelope every endpoint answers with.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every response. On success Errors is null and
// Object is set; on failure Object is omitted and Errors is non-empty.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Object  any      `json:"object,omitempty"`
	Errors  []string `json:"errors"`
}

// Standard messages.
const (
	MsgValidationFailed = "Validation failed"
	MsgUnauthorized     = "Unauthorized"
	MsgForbidden        = "Forbidden"
	MsgServerError      = "Server error"
)

// Success writes a success envelope.
func Success(c echo.Context, status int, message string, object any) error {
	return c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Object:  object,
	})
}

// Error is a request rejection that renders as a failure envelope.
type Error struct {
	Status  int
	Message string
	Reasons []string
}

func (e *Error) Error() string {
	if len(e.Reasons) > 0 {
		return e.Message + ": " + e.Reasons[0]
	}
	return e.Message
}

// Envelope returns the failure envelope for e.
func (e *Error) Envelope() Envelope {
	reasons := e.Reasons
	if len(reasons) == 0 {
		reasons = []string{e.Message}
	}
	return Envelope{Success: false, Message: e.Message, Errors: reasons}
}

// NewError builds a rejection; with no reasons the message is the only reason.
func NewError(status int, message string, reasons ...string) *Error {
	return &Error{Status: status, Message: message, Reasons: reasons}
}

// BadRequest is a 400 with the given message.
func BadRequest(message string, reasons ...string) *Error {
	return NewError(http.StatusBadRequest, message, reasons...)
}

// ValidationFailed is a 400 listing one reason per invalid field.
func ValidationFailed(reasons ...string) *Error {
	return NewError(http.StatusBadRequest, MsgValidationFailed, reasons...)
}

// Unauthorized is a 401 for missing or invalid credentials.
func Unauthorized(reason string) *Error {
	return NewError(http.StatusUnauthorized, MsgUnauthorized, reason)
}

// Forbidden is a 403 for an authenticated caller lacking the role.
func Forbidden(reason string) *Error {
	return NewError(http.StatusForbidden, MsgForbidden, reason)
}

// NotFound is a 404 whose message doubles as its reason.
func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message, message)
}

// TooManyRequests is a 429 whose message doubles as its reason.
func TooManyRequests(message string) *Error {
	return NewError(http.StatusTooManyRequests, message, message)
}

// ServerError is a 500 that hides the underlying cause.
func ServerError() *Error {
	return NewError(http.StatusInternalServerError, MsgServerError, "An unexpected error occurred")
}
