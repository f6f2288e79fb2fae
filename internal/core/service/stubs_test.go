package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
	"github.com/storefront/commerce-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User // keyed by ID
	createErr error                   // if set, the next Create returns this error once
	countErr  error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countErr != nil {
		return 0, r.countErr
	}
	return int64(len(r.users)), nil
}

// Create mirrors the unique indexes of the real collection.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	for _, u := range r.users {
		switch {
		case u.Username == user.Username:
			return domain.ErrUsernameTaken
		case u.Email == user.Email:
			return domain.ErrEmailTaken
		case u.Role == domain.RoleAdmin && user.Role == domain.RoleAdmin:
			return domain.ErrAdminExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

type stubProductRepo struct {
	byID      map[string]*domain.Product
	createErr error
	listErr   error
	lastList  ports.ListProductsFilter
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch domain.ProductPatch, updatedAt time.Time) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	applyPatch(patch, p)
	p.UpdatedAt = updatedAt
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return p, nil
}

// List applies the same filter and ordering the real Mongo repo uses.
func (r *stubProductRepo) List(_ context.Context, f ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	r.lastList = f
	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	var matched []*domain.Product
	for _, p := range r.byID {
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.Product{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

// plainHasher is a reversible stand-in for bcrypt that counts comparisons.
type plainHasher struct {
	mu       sync.Mutex
	compares int
}

func (h *plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *plainHasher) Compare(hash, password string) bool {
	h.mu.Lock()
	h.compares++
	h.mu.Unlock()
	return hash == "hashed:"+password
}

type stubTokens struct {
	issued []domain.Identity
}

func (s *stubTokens) Issue(identity domain.Identity) (string, error) {
	s.issued = append(s.issued, identity)
	return "token-for-" + identity.ID, nil
}

func (s *stubTokens) Verify(string) (domain.Identity, error) {
	return domain.Identity{}, domain.ErrInvalidToken
}

// stubThrottle counts and checks under one lock, like the Redis script.
type stubThrottle struct {
	mu       sync.Mutex
	limit    int
	attempts map[string]int
	allowErr error
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{limit: limit, attempts: make(map[string]int)}
}

func (t *stubThrottle) Allow(_ context.Context, key string) (bool, error) {
	if t.allowErr != nil {
		return false, t.allowErr
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts[key]++
	return t.attempts[key] <= t.limit, nil
}

func (t *stubThrottle) Reset(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, key)
	return nil
}

type recordingSink struct {
	events []domain.Event
}

func (s *recordingSink) Enqueue(e domain.Event) {
	s.events = append(s.events, e)
}

func (s *recordingSink) subjects() []string {
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Subject)
	}
	return out
}

// applyPatch copies the supplied fields onto p, as the Mongo $set does.
func applyPatch(patch domain.ProductPatch, p *domain.Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
}
