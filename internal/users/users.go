// Package users holds the operator accounts seeded at startup. There is no
// HTTP surface for account management; authentication sits outside this
// service.
package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// User is an operator account.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository defines the interface for user storage.
type Repository interface {
	Create(ctx context.Context, username, role string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

// InMemoryRepository keeps users in process memory.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*User
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[string]*User),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, username, role string) (*User, error) {
	u := &User{
		ID:        uuid.New().String(),
		Username:  username,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.records[u.ID] = u
	r.mu.Unlock()

	return u, nil
}

// GetByUsername returns the user with the given username, or nil when none
// exists.
func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.records {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*User, 0, len(r.records))
	for _, u := range r.records {
		out = append(out, u)
	}
	return out, nil
}
