package auth_test

import (
	"context"
	"sync"
	"time"

	"secretgate/internal/user"
)

// memUserStore is an in-memory UserStore with the same semantics as the
// Postgres repository: ids assigned on create, duplicate emails rejected.
type memUserStore struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]*user.User
	byID    map[int64]*user.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		byEmail: make(map[string]*user.User),
		byID:    make(map[int64]*user.User),
	}
}

func (s *memUserStore) Create(_ context.Context, email, passwordHash, name string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, user.ErrDuplicateEmail
	}

	s.nextID++
	u := &user.User{
		ID:           s.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now(),
	}
	s.byEmail[email] = u
	s.byID[u.ID] = u

	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// memSessionStore is an in-memory revocation denylist
type memSessionStore struct {
	mu      sync.Mutex
	revoked map[string]struct{}
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{revoked: make(map[string]struct{})}
}

func (s *memSessionStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = struct{}{}
	return nil
}

func (s *memSessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok, nil
}
