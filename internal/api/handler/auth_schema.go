package handler

import (
	"strings"

	"github.com/storefront/commerce-api/internal/api/validation"
	"github.com/storefront/commerce-api/internal/core/domain"
)

// --- Request / Response types ---

type registerRequest struct {
	Username *string `json:"username" validate:"required,min=1,alphanum" example:"alice"`
	Email    *string `json:"email"    validate:"required,email"          example:"alice@example.com"`
	Password *string `json:"password" validate:"required"                example:"Secret1!"`
}

func (r *registerRequest) Normalize() {
	trim(r.Username)
	normalizeEmail(r.Email)
}

// Rules lists every password strength rule the password breaks.
func (r *registerRequest) Rules() []string {
	if r.Password == nil || *r.Password == "" {
		return nil
	}
	return validation.PasswordRules(*r.Password)
}

type loginRequest struct {
	Email    *string `json:"email"    validate:"required,email" example:"alice@example.com"`
	Password *string `json:"password" validate:"required,min=1" example:"Secret1!"`
}

func (r *loginRequest) Normalize() {
	normalizeEmail(r.Email)
}

type userResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(id domain.Identity) userResponse {
	return userResponse{
		ID:       id.ID,
		Username: id.Username,
		Email:    id.Email,
		Role:     id.Role,
	}
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func normalizeEmail(s *string) {
	if s != nil {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
