package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
	"github.com/storefront/commerce-api/internal/pkg/metrics"
)

// dummyPassword is hashed once and compared against when the login email is
// unknown, so both failure paths cost one bcrypt comparison.
const dummyPassword = "storefront-timing-equaliser"

// AuthService implements registration and login.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	events   ports.EventSink
	log      zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService builds an AuthService. throttle and events may be nil.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	throttle ports.LoginThrottle,
	events ports.EventSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		throttle: throttle,
		events:   events,
		log:      log,
	}
}

// Register creates a new account. The very first account becomes Admin.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (domain.Identity, error) {
	if err := s.ensureAvailable(ctx, in.Username, in.Email); err != nil {
		return domain.Identity{}, err
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("register: count users: %w", err)
	}
	role := domain.RoleCustomer
	if count == 0 {
		role = domain.RoleAdmin
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.users.Create(ctx, user)
	if errors.Is(err, domain.ErrAdminExists) {
		// Another registration won the first-user race.
		s.log.Info().Str("username", user.Username).Msg("admin already claimed, registering as customer")
		user.Role = domain.RoleCustomer
		err = s.users.Create(ctx, user)
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("register: %w", err)
	}

	identity := user.Identity()
	metrics.UsersRegisteredTotal.WithLabelValues(string(identity.Role)).Inc()
	s.log.Info().Str("user_id", identity.ID).Str("role", string(identity.Role)).Msg("user registered")
	emit(s.events, domain.SubjectUserRegistered, identity.ID, identity)

	return identity, nil
}

// ensureAvailable reports the first uniqueness conflict, username before email.
func (s *AuthService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("register: find by username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("register: find by email: %w", err)
	}
	return nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		} else if !allowed {
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("login: %w", err)
		}
		s.hasher.Compare(s.placeholderHash(), password)
		return nil, s.rejectLogin()
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, s.rejectLogin()
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	identity := user.Identity()
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return &ports.LoginResult{Token: token, User: identity}, nil
}

func (s *AuthService) rejectLogin() error {
	metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
	return domain.ErrInvalidCredentials
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to prepare placeholder hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
