package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/labstack/echo/v4"

	"github.com/storefront/commerce-api/internal/api/response"
	"github.com/storefront/commerce-api/internal/api/validation"
)

const payloadKey = "payload"

// Validate binds the JSON body into a new T, normalizes and validates it,
// and stores the result for Payload. Any failure short-circuits with a 400
// "Validation failed" envelope listing every violation.
func Validate[T any]() echo.MiddlewareFunc {
	binder := &echo.DefaultBinder{}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := new(T)
			if err := binder.BindBody(c, req); err != nil {
				return response.ValidationFailed(bindReason(err))
			}

			if err := c.Validate(req); err != nil {
				var errs validation.Errors
				if errors.As(err, &errs) {
					return response.ValidationFailed(errs...)
				}
				return err
			}

			c.Set(payloadKey, req)
			return next(c)
		}
	}
}

// Payload returns the value stored by Validate[T].
func Payload[T any](c echo.Context) (*T, error) {
	req, ok := c.Get(payloadKey).(*T)
	if !ok {
		return nil, fmt.Errorf("payload of type %T missing from context", req)
	}
	return req, nil
}

// bindReason describes why the body could not be decoded.
func bindReason(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return "Request body must be a JSON object"
		}
		return fmt.Sprintf("%s must be %s", validation.Label(typeErr.Field), expected(typeErr.Type))
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
		return "Content-Type must be application/json"
	}
	return "Request body must be valid JSON"
}

func expected(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "valid"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Bool:
		return "a boolean"
	default:
		return "a number"
	}
}
