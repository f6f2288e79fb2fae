package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storefront/commerce-api/internal/api/middleware"
	"github.com/storefront/commerce-api/internal/api/response"
	"github.com/storefront/commerce-api/internal/api/validation"
	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (domain.Identity, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (domain.Identity, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

// newContext builds an echo context carrying a JSON request.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (response.Envelope, map[string]any) {
	t.Helper()
	var env response.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	obj, _ := env.Object.(map[string]any)
	return env, obj
}

func rejection(t *testing.T, err error) *response.Error {
	t.Helper()
	var re *response.Error
	if !errors.As(err, &re) {
		t.Fatalf("expected *response.Error, got %T: %v", err, err)
	}
	return re
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (domain.Identity, error) {
			if input.Username != "alice" || input.Email != "alice@example.com" || input.Password != "Secret1!" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return domain.Identity{ID: "u1", Username: input.Username, Email: input.Email, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/register",
		`{"username":"  alice ","email":" Alice@Example.COM","password":"Secret1!"}`)
	if err := middleware.Validate[registerRequest]()(h.Register)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	env, user := decodeEnvelope(t, rec)
	if !env.Success || env.Errors != nil {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if user["id"] != "u1" || user["role"] != "Admin" || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatal("password must never be returned")
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatal("password hash must never be returned")
	}
}

func TestAuthHandler_Register_ListsEveryPasswordRule(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (domain.Identity, error) {
			t.Fatalf("should not be called")
			return domain.Identity{}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"abc"}`)
	err := middleware.Validate[registerRequest]()(h.Register)(c)

	re := rejection(t, err)
	if re.Status != http.StatusBadRequest || re.Message != response.MsgValidationFailed {
		t.Fatalf("unexpected rejection: %+v", re)
	}
	want := []string{
		"Password must be at least 8 characters",
		"Password must include at least one uppercase letter",
		"Password must include at least one number",
		"Password must include at least one special character",
	}
	if strings.Join(re.Reasons, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected reasons: %v", re.Reasons)
	}
}

func TestAuthHandler_Register_InvalidFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newContext(http.MethodPost, "/auth/register",
		`{"username":"al ice","email":"not-an-email","password":"Secret1!"}`)
	err := middleware.Validate[registerRequest]()(h.Register)(c)

	re := rejection(t, err)
	want := []string{"Username must be alphanumeric", "Invalid email format"}
	if strings.Join(re.Reasons, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected reasons: %v", re.Reasons)
	}
}

func TestAuthHandler_Register_ServiceErrorPropagates(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (domain.Identity, error) {
			return domain.Identity{}, domain.ErrUsernameTaken
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"Secret1!"}`)
	err := middleware.Validate[registerRequest]()(h.Register)(c)

	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newContext(http.MethodPost, "/auth/register", "not-json")
	err := middleware.Validate[registerRequest]()(h.Register)(c)

	if re := rejection(t, err); re.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", re.Status)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "alice@example.com" || password != "weak" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				Token: "token123",
				User:  domain.Identity{ID: "u1", Username: "alice", Email: email, Role: domain.RoleCustomer},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	// Login never applies the password strength rules.
	c, rec := newContext(http.MethodPost, "/auth/login", `{"email":"ALICE@example.com","password":"weak"}`)
	if err := middleware.Validate[loginRequest]()(h.Login)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	_, obj := decodeEnvelope(t, rec)
	if obj["token"] != "token123" {
		t.Fatalf("expected token, got %v", obj["token"])
	}
	user, ok := obj["user"].(map[string]any)
	if !ok || user["username"] != "alice" || user["role"] != "Customer" {
		t.Fatalf("unexpected user payload: %+v", obj["user"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"bad"}`)
	err := middleware.Validate[loginRequest]()(h.Login)(c)

	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":""}`)
	err := middleware.Validate[loginRequest]()(h.Login)(c)

	re := rejection(t, err)
	if len(re.Reasons) != 1 || re.Reasons[0] != "Password is required" {
		t.Fatalf("unexpected reasons: %v", re.Reasons)
	}
}
