package submissions

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for submission storage. Validation is the
// caller's responsibility; the store accepts whatever it is given.
type Repository interface {
	Create(ctx context.Context, req *CreateSubmissionRequest) (*ContactSubmission, error)
	List(ctx context.Context) ([]*ContactSubmission, error)
	GetByID(ctx context.Context, id string) (*ContactSubmission, error)
}

// InMemoryRepository keeps submissions in process memory. All data is lost on
// restart; fixed sample data is reapplied at startup.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*ContactSubmission
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[string]*ContactSubmission),
	}
}

// Create stores a new submission with a generated id and creation timestamp.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateSubmissionRequest) (*ContactSubmission, error) {
	sub := &ContactSubmission{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Package:   req.Package,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.records[sub.ID] = sub
	r.mu.Unlock()

	return sub, nil
}

// List returns all submissions, newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]*ContactSubmission, error) {
	r.mu.RLock()
	out := make([]*ContactSubmission, 0, len(r.records))
	for _, sub := range r.records {
		out = append(out, sub)
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

// GetByID retrieves a submission by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*ContactSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.records[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	return sub, nil
}

// Count reports the number of stored submissions.
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
