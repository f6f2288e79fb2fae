package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/pkg/config"
)

// Claims is the token payload.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 tokens. It implements ports.TokenService.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(cfg *config.Config) (*JWTService, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("jwt: secret must not be empty")
	}
	ttl := cfg.Auth.TokenTTL.Std()
	if ttl <= 0 {
		return nil, errors.New("jwt: token ttl must be positive")
	}
	return &JWTService{
		secret: []byte(cfg.Auth.JWTSecret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *JWTService) Issue(identity domain.Identity) (string, error) {
	now := s.now()
	claims := Claims{
		ID:       identity.ID,
		Username: identity.Username,
		Email:    identity.Email,
		Role:     string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks algorithm, signature and expiry. Any failure is reported as
// domain.ErrInvalidToken.
func (s *JWTService) Verify(token string) (domain.Identity, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if claims.ID == "" || !role.Valid() {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{
		ID:       claims.ID,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     role,
	}, nil
}
