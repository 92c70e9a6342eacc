package interactions

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for interaction storage. The log is
// append-only; there is no update or delete.
type Repository interface {
	Create(ctx context.Context, req *CreateInteractionRequest) (*Interaction, error)
	List(ctx context.Context) ([]*Interaction, error)
	ListByProspect(ctx context.Context, prospectID string) ([]*Interaction, error)
}

// InMemoryRepository keeps interactions in process memory.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Interaction
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[string]*Interaction),
	}
}

// Create appends an interaction. CreatedBy defaults when omitted. The
// prospect reference is not checked; an interaction may outlive its
// prospect.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateInteractionRequest) (*Interaction, error) {
	in := &Interaction{
		ID:             uuid.New().String(),
		ProspectID:     req.ProspectID,
		Type:           req.Type,
		Subject:        req.Subject,
		Content:        req.Content,
		Outcome:        req.Outcome,
		NextAction:     req.NextAction,
		NextActionDate: req.NextActionDate,
		CreatedBy:      req.CreatedBy,
		CreatedAt:      time.Now().UTC(),
	}
	if in.CreatedBy == "" {
		in.CreatedBy = DefaultCreatedBy
	}

	r.mu.Lock()
	r.records[in.ID] = in
	r.mu.Unlock()

	return in, nil
}

// List returns all interactions, newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Interaction, error) {
	r.mu.RLock()
	out := make([]*Interaction, 0, len(r.records))
	for _, in := range r.records {
		out = append(out, in)
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

// ListByProspect returns the interactions referencing a prospect, newest
// first. An unknown prospect id yields an empty list, not an error.
func (r *InMemoryRepository) ListByProspect(ctx context.Context, prospectID string) ([]*Interaction, error) {
	r.mu.RLock()
	out := make([]*Interaction, 0)
	for _, in := range r.records {
		if in.ProspectID == prospectID {
			out = append(out, in)
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(list []*Interaction) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return strings.Compare(list[i].ID, list[j].ID) < 0
	})
}
