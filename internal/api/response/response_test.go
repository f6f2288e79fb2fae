package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSuccess_ErrorsIsNull(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := Success(c, http.StatusCreated, "Created", map[string]string{"id": "1"}); err != nil {
		t.Fatalf("Success: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if string(body["success"]) != "true" || string(body["errors"]) != "null" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
	if _, ok := body["object"]; !ok {
		t.Fatal("object must be present on success")
	}
}

func TestError_EnvelopeOmitsObject(t *testing.T) {
	env := Unauthorized("Invalid or expired token").Envelope()

	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"success":false,"message":"Unauthorized","errors":["Invalid or expired token"]}`
	if string(raw) != want {
		t.Fatalf("got %s, want %s", raw, want)
	}
}

func TestError_DefaultsReasonToMessage(t *testing.T) {
	env := NewError(http.StatusNotFound, "Product not found").Envelope()
	if len(env.Errors) != 1 || env.Errors[0] != "Product not found" {
		t.Fatalf("unexpected errors: %v", env.Errors)
	}
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
		msg    string
	}{
		{ValidationFailed("x"), http.StatusBadRequest, MsgValidationFailed},
		{Forbidden("Insufficient permissions"), http.StatusForbidden, MsgForbidden},
		{NotFound("Product not found"), http.StatusNotFound, "Product not found"},
		{TooManyRequests("Too many login attempts"), http.StatusTooManyRequests, "Too many login attempts"},
		{ServerError(), http.StatusInternalServerError, MsgServerError},
	}
	for _, tc := range cases {
		if tc.err.Status != tc.status || tc.err.Message != tc.msg {
			t.Errorf("got %d %q, want %d %q", tc.err.Status, tc.err.Message, tc.status, tc.msg)
		}
	}
}
