package clients

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for client storage.
type Repository interface {
	Create(ctx context.Context, req *CreateClientRequest) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	FindByEmail(ctx context.Context, email string) (*Client, error)
	Update(ctx context.Context, id string, req *UpdateClientRequest) (*Client, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// InMemoryRepository keeps clients in process memory.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Client
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[string]*Client),
	}
}

// Create stores a new client. Status defaults to active and StartDate to now.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateClientRequest) (*Client, error) {
	now := time.Now().UTC()
	c := &Client{
		ID:           uuid.New().String(),
		SubmissionID: req.SubmissionID,
		Name:         req.Name,
		Email:        req.Email,
		Company:      req.Company,
		Package:      req.Package,
		MonthlyValue: req.MonthlyValue,
		Status:       req.Status,
		StartDate:    now,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	if req.StartDate != nil {
		c.StartDate = *req.StartDate
	}

	r.mu.Lock()
	r.records[c.ID] = c
	r.mu.Unlock()

	return c, nil
}

// List returns all clients, newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Client, error) {
	r.mu.RLock()
	out := make([]*Client, 0, len(r.records))
	for _, c := range r.records {
		out = append(out, c)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return strings.Compare(out[i].ID, out[j].ID) < 0
	})
	return out, nil
}

// GetByID retrieves a client by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.records[id]
	if !ok {
		return nil, ErrClientNotFound
	}
	return c, nil
}

// FindByEmail returns the first client matching the email, or nil when no
// client matches.
func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.records {
		if strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return nil, nil
}

// Update merges the non-nil fields of req onto the stored record and
// re-stamps UpdatedAt.
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpdateClientRequest) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.records[id]
	if !ok {
		return nil, ErrClientNotFound
	}

	updated := *c
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Company != nil {
		updated.Company = *req.Company
	}
	if req.Package != nil {
		updated.Package = *req.Package
	}
	if req.MonthlyValue != nil {
		updated.MonthlyValue = *req.MonthlyValue
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.StartDate != nil {
		updated.StartDate = *req.StartDate
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	updated.UpdatedAt = time.Now().UTC()

	r.records[id] = &updated
	return &updated, nil
}

// Delete removes a client if present and reports whether one was removed.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}
