package prospects

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for prospect storage.
//
// Delete exists as part of the storage contract but no HTTP route exposes
// it; deleting a prospect leaves its interactions in place (orphan-tolerant
// references, decided in DESIGN.md).
type Repository interface {
	Create(ctx context.Context, req *CreateProspectRequest) (*Prospect, error)
	List(ctx context.Context) ([]*Prospect, error)
	GetByID(ctx context.Context, id string) (*Prospect, error)
	FindByEmail(ctx context.Context, email string) (*Prospect, error)
	Update(ctx context.Context, id string, req *UpdateProspectRequest) (*Prospect, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// InMemoryRepository keeps prospects in process memory.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Prospect
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[string]*Prospect),
	}
}

// Create stores a new prospect, applying declared defaults for omitted
// enum fields.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateProspectRequest) (*Prospect, error) {
	now := time.Now().UTC()
	p := &Prospect{
		ID:               uuid.New().String(),
		SubmissionID:     req.SubmissionID,
		Name:             req.Name,
		Email:            req.Email,
		Company:          req.Company,
		Status:           req.Status,
		Priority:         req.Priority,
		Source:           req.Source,
		NextFollowUpDate: req.NextFollowUpDate,
		AssignedTo:       req.AssignedTo,
		Notes:            req.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if p.Status == "" {
		p.Status = StatusNew
	}
	if p.Priority == "" {
		p.Priority = PriorityMedium
	}
	if p.Source == "" {
		p.Source = DefaultSource
	}

	r.mu.Lock()
	r.records[p.ID] = p
	r.mu.Unlock()

	return p, nil
}

// List returns all prospects, newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Prospect, error) {
	r.mu.RLock()
	out := make([]*Prospect, 0, len(r.records))
	for _, p := range r.records {
		out = append(out, p)
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

// GetByID retrieves a prospect by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Prospect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.records[id]
	if !ok {
		return nil, ErrProspectNotFound
	}
	return p, nil
}

// FindByEmail returns the first prospect matching the email, or nil when no
// prospect matches. Email is the lead's identity for deduplication.
func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*Prospect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.records {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return nil, nil
}

// Update merges the non-nil fields of req onto the stored record and
// re-stamps UpdatedAt.
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpdateProspectRequest) (*Prospect, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.records[id]
	if !ok {
		return nil, ErrProspectNotFound
	}

	updated := *p
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Company != nil {
		updated.Company = *req.Company
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.Priority != nil {
		updated.Priority = *req.Priority
	}
	if req.Source != nil {
		updated.Source = *req.Source
	}
	if req.NextFollowUpDate != nil {
		updated.NextFollowUpDate = req.NextFollowUpDate
	}
	if req.AssignedTo != nil {
		updated.AssignedTo = *req.AssignedTo
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	updated.UpdatedAt = time.Now().UTC()

	r.records[id] = &updated
	return &updated, nil
}

// Delete removes a prospect if present and reports whether one was removed.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}
