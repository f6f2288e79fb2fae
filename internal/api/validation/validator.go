// Package validation turns request schemas into normalized values or the
// full list of human-readable violations.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Normalizer is implemented by schemas that clean their input (trim,
// lowercase) before rules run.
type Normalizer interface {
	Normalize()
}

// RuleChecker is implemented by schemas with rules the tag language cannot
// express. Rules returns one message per violated rule.
type RuleChecker interface {
	Rules() []string
}

// Errors is the list of violated rules for one payload.
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, "; ")
}

// Validator wraps go-playground/validator so Echo can call c.Validate(req).
type Validator struct {
	v *validator.Validate
}

// New returns a Validator ready to be assigned to echo.Echo.Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(numberValue, Number{})

	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f, ok := asFloat(fl.Field())
		return ok && !math.IsNaN(f)
	})
	_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		f, ok := asFloat(fl.Field())
		return ok && f == math.Trunc(f) && inIntRange(f)
	})

	return &Validator{v: v}
}

// Validate satisfies the echo.Validator interface. It normalizes i in
// place, then returns Errors listing every violated rule.
func (ev *Validator) Validate(i any) error {
	if n, ok := i.(Normalizer); ok {
		n.Normalize()
	}

	var msgs Errors
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return err
		}
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
	}
	if rc, ok := i.(RuleChecker); ok {
		msgs = append(msgs, rc.Rules()...)
	}

	if len(msgs) > 0 {
		return msgs
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := Label(fe.Field())
	numeric := isNumeric(fe.Kind())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email format"
	case "alphanum":
		return field + " must be alphanumeric"
	case "finite":
		return field + " must be a number"
	case "integer":
		if f, ok := fe.Value().(float64); ok && f == math.Trunc(f) {
			return field + " is out of range"
		}
		return field + " must be an integer"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		switch {
		case numeric && fe.Param() == "0":
			return field + " cannot be negative"
		case numeric:
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case fe.Param() == "1":
			return field + " is required"
		default:
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
	case "max":
		if numeric {
			return fmt.Sprintf("%s must be at most %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Label turns a JSON field name into the form used in messages ("price" → "Price").
func Label(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// inIntRange reports whether f converts to int without overflow.
// -float64(math.MinInt) is 2^63 (or 2^31), exactly representable.
func inIntRange(f float64) bool {
	return f >= float64(math.MinInt) && f < -float64(math.MinInt)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func asFloat(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	}
	return 0, false
}
