package prospects

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

func TestCreate_DefaultsApplied(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	body, _ := json.Marshal(CreateProspectRequest{
		Name:  "Ada Clarke",
		Email: "ada@clarkeconsulting.co.uk",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/prospects", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d", http.StatusCreated, w.Code)
	}
	var p Prospect
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Status != StatusNew {
		t.Errorf("expected default status new, got %s", p.Status)
	}
	if p.Priority != PriorityMedium {
		t.Errorf("expected default priority medium, got %s", p.Priority)
	}
	if p.Source != DefaultSource {
		t.Errorf("expected default source, got %s", p.Source)
	}
}

func TestCreate_RejectsUnknownEnums(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	body := []byte(`{"name":"X","email":"x@y.co","status":"wishful","priority":"urgent"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/prospects", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := resp.Errors["status"]; !ok {
		t.Error("expected status field error")
	}
	if _, ok := resp.Errors["priority"]; !ok {
		t.Error("expected priority field error")
	}
}

func TestUpdate_PartialMerge(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	created, _ := repo.Create(ctx, &CreateProspectRequest{
		Name:  "Ben Ortiz",
		Email: "ben@ortiz.io",
		Notes: "met at conference",
	})

	handler := NewHandler(repo, logging.Default())

	status := StatusContacted
	body, _ := json.Marshal(UpdateProspectRequest{Status: &status})
	req := httptest.NewRequest(http.MethodPut, "/api/prospects/"+created.ID, bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", created.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	handler.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var p Prospect
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Status != StatusContacted {
		t.Errorf("expected contacted, got %s", p.Status)
	}
	if p.Notes != "met at conference" {
		t.Errorf("untouched field changed: %q", p.Notes)
	}
	if !p.UpdatedAt.After(created.UpdatedAt) && !p.UpdatedAt.Equal(created.UpdatedAt) {
		t.Error("expected UpdatedAt re-stamped")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	body := []byte(`{"notes":"x"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/prospects/missing", bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "missing")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	handler.Update(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestRepository_FindByEmail(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	repo.Create(ctx, &CreateProspectRequest{Name: "A", Email: "Lead@Example.com"})

	found, err := repo.FindByEmail(ctx, "lead@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("expected case-insensitive email match")
	}

	none, err := repo.FindByEmail(ctx, "other@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if none != nil {
		t.Fatal("expected nil for unmatched email")
	}
}

func TestRepository_Delete(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	p, _ := repo.Create(ctx, &CreateProspectRequest{Name: "D", Email: "d@e.co"})

	removed, err := repo.Delete(ctx, p.ID)
	if err != nil || !removed {
		t.Fatalf("expected delete to remove record, got %v %v", removed, err)
	}
	removed, err = repo.Delete(ctx, p.ID)
	if err != nil || removed {
		t.Fatalf("expected second delete to report nothing removed, got %v %v", removed, err)
	}
}

func TestStatusEnum(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("declared status %q should be valid", s)
		}
	}
	if Status("open").Valid() {
		t.Error("unknown status should be invalid")
	}
	if !StatusConverted.Terminal() || !StatusRejected.Terminal() {
		t.Error("converted and rejected are terminal")
	}
	if StatusProposalSent.Terminal() {
		t.Error("proposal_sent is not terminal")
	}
	if StatusRejected.BadgeVariant() != "destructive" {
		t.Error("rejected renders destructive badge")
	}
}

func TestPriorityEnum(t *testing.T) {
	if !PriorityHigh.Valid() || Priority("urgent").Valid() {
		t.Error("priority validity mismatch")
	}
	if PriorityHigh.Color() != "text-red-600" {
		t.Error("high priority renders red")
	}
}

func TestList_NewestFirst(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	older, _ := repo.Create(ctx, &CreateProspectRequest{Name: "Old", Email: "old@e.co"})
	time.Sleep(5 * time.Millisecond)
	newer, _ := repo.Create(ctx, &CreateProspectRequest{Name: "New", Email: "new@e.co"})

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Fatal("expected newest-first ordering")
	}
}
