package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/thegrowthaccelerators/consulting-crm/internal/clients"
	"github.com/thegrowthaccelerators/consulting-crm/internal/prospects"
	"github.com/thegrowthaccelerators/consulting-crm/internal/submissions"
)

func newService() (*Service, submissions.Repository, *prospects.InMemoryRepository, *clients.InMemoryRepository) {
	subs := submissions.NewInMemoryRepository()
	pros := prospects.NewInMemoryRepository()
	cls := clients.NewInMemoryRepository()
	return NewService(subs, pros, cls, nil), subs, pros, cls
}

func TestDefaultPriceForPackage(t *testing.T) {
	cases := map[string]string{
		"startup": "£750",
		"growth":  "£2,000",
		"ongoing": "£1,500",
		"":        "£750",
		"custom":  "£750",
	}
	for pkg, want := range cases {
		if got := DefaultPriceForPackage(pkg); got != want {
			t.Errorf("DefaultPriceForPackage(%q) = %q, want %q", pkg, got, want)
		}
	}
}

func TestConvertToProspect(t *testing.T) {
	svc, subs, _, _ := newService()
	ctx := context.Background()

	sub, _ := subs.Create(ctx, &submissions.CreateSubmissionRequest{
		Name:    "Maya Flint",
		Email:   "maya@flintandco.co.uk",
		Message: "We need help scaling our operations team.",
		Package: "growth",
	})

	p, err := svc.ConvertToProspect(ctx, sub.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SubmissionID != sub.ID {
		t.Error("expected submission back-reference")
	}
	if p.Status != prospects.StatusNew || p.Priority != prospects.PriorityMedium {
		t.Errorf("expected default status/priority, got %s/%s", p.Status, p.Priority)
	}
	if p.Source != prospects.DefaultSource {
		t.Errorf("expected source consultation_form, got %s", p.Source)
	}
	if !strings.HasPrefix(p.Notes, "Original inquiry: ") {
		t.Errorf("unexpected notes: %q", p.Notes)
	}
	if !strings.Contains(p.Notes, "scaling our operations team") {
		t.Errorf("notes missing original message: %q", p.Notes)
	}
}

func TestConvertToProspect_DuplicateEmailRejected(t *testing.T) {
	svc, subs, _, _ := newService()
	ctx := context.Background()

	first, _ := subs.Create(ctx, &submissions.CreateSubmissionRequest{
		Name: "A", Email: "dup@firm.co", Message: "first message here",
	})
	second, _ := subs.Create(ctx, &submissions.CreateSubmissionRequest{
		Name: "A again", Email: "Dup@Firm.co", Message: "second message here",
	})

	if _, err := svc.ConvertToProspect(ctx, first.ID); err != nil {
		t.Fatalf("first conversion: %v", err)
	}
	if _, err := svc.ConvertToProspect(ctx, second.ID); err != ErrAlreadyProspect {
		t.Fatalf("expected ErrAlreadyProspect, got %v", err)
	}
}

func TestConvertToClient_PriceAndNotes(t *testing.T) {
	svc, subs, _, _ := newService()
	ctx := context.Background()

	sub, _ := subs.Create(ctx, &submissions.CreateSubmissionRequest{
		Name:    "Owen Price",
		Email:   "owen@priceltd.co.uk",
		Message: "Looking for ongoing advisory support.",
		Package: "ongoing",
	})

	c, err := svc.ConvertToClient(ctx, sub.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.SubmissionID != sub.ID {
		t.Errorf("expected submission back-reference %q, got %q", sub.ID, c.SubmissionID)
	}
	raw, _ := json.Marshal(c)
	if !strings.Contains(string(raw), sub.ID) {
		t.Errorf("serialized client must carry the submission id: %s", raw)
	}
	if c.MonthlyValue != "£1,500" {
		t.Errorf("expected £1,500 for ongoing, got %q", c.MonthlyValue)
	}
	if c.Package != "ongoing" {
		t.Errorf("expected package carried over, got %q", c.Package)
	}
	if c.Status != clients.StatusActive {
		t.Errorf("expected active, got %s", c.Status)
	}
	if !strings.HasPrefix(c.Notes, "Converted from consultation submission on ") {
		t.Errorf("unexpected notes: %q", c.Notes)
	}
	if !strings.HasSuffix(c.Notes, "Original message: Looking for ongoing advisory support....") {
		t.Errorf("notes missing marked original message: %q", c.Notes)
	}
}

func TestConvertToClient_MissingPackageDefaults(t *testing.T) {
	svc, subs, _, _ := newService()
	ctx := context.Background()

	sub, _ := subs.Create(ctx, &submissions.CreateSubmissionRequest{
		Name: "B", Email: "b@c.co", Message: "no package selected here",
	})

	c, err := svc.ConvertToClient(ctx, sub.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Package != "startup" {
		t.Errorf("expected startup default, got %q", c.Package)
	}
	if c.MonthlyValue != "£750" {
		t.Errorf("expected £750 default, got %q", c.MonthlyValue)
	}
}

func TestConvertToClient_DuplicateEmailRejected(t *testing.T) {
	svc, subs, _, _ := newService()
	ctx := context.Background()

	sub, _ := subs.Create(ctx, &submissions.CreateSubmissionRequest{
		Name: "C", Email: "c@d.co", Message: "message long enough",
	})
	if _, err := svc.ConvertToClient(ctx, sub.ID); err != nil {
		t.Fatalf("first conversion: %v", err)
	}
	if _, err := svc.ConvertToClient(ctx, sub.ID); err != ErrAlreadyClient {
		t.Fatalf("expected ErrAlreadyClient, got %v", err)
	}
}

func TestCrossPathConversionAllowed(t *testing.T) {
	svc, subs, _, _ := newService()
	ctx := context.Background()

	sub, _ := subs.Create(ctx, &submissions.CreateSubmissionRequest{
		Name: "D", Email: "d@e.co", Message: "message long enough", Package: "startup",
	})

	if _, err := svc.ConvertToProspect(ctx, sub.ID); err != nil {
		t.Fatalf("prospect conversion: %v", err)
	}
	if _, err := svc.ConvertToClient(ctx, sub.ID); err != nil {
		t.Fatalf("client conversion after prospect conversion should succeed: %v", err)
	}
}

func TestConvertNotes_LongMessageTruncated(t *testing.T) {
	svc, subs, _, _ := newService()
	ctx := context.Background()

	long := strings.Repeat("a", 250)
	sub, _ := subs.Create(ctx, &submissions.CreateSubmissionRequest{
		Name: "E", Email: "e@f.co", Message: long,
	})

	p, err := svc.ConvertToProspect(ctx, sub.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Original inquiry: " + strings.Repeat("a", 200) + "..."
	if p.Notes != want {
		t.Errorf("expected 200-char excerpt with ellipsis, got %q", p.Notes)
	}
}

func TestConvertNotes_ShortMessageStillMarked(t *testing.T) {
	svc, subs, _, _ := newService()
	ctx := context.Background()

	sub, _ := subs.Create(ctx, &submissions.CreateSubmissionRequest{
		Name: "E2", Email: "e2@f.co", Message: "short but valid note",
	})

	p, err := svc.ConvertToProspect(ctx, sub.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Notes != "Original inquiry: short but valid note..." {
		t.Errorf("ellipsis is appended regardless of length, got %q", p.Notes)
	}
}

func TestUnconvertedSubmissions(t *testing.T) {
	svc, subs, _, _ := newService()
	ctx := context.Background()

	converted, _ := subs.Create(ctx, &submissions.CreateSubmissionRequest{
		Name: "F", Email: "f@g.co", Message: "message long enough",
	})
	fresh, _ := subs.Create(ctx, &submissions.CreateSubmissionRequest{
		Name: "G", Email: "g@h.co", Message: "message long enough",
	})

	if _, err := svc.ConvertToProspect(ctx, converted.ID); err != nil {
		t.Fatalf("conversion: %v", err)
	}

	list, err := svc.UnconvertedSubmissions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != fresh.ID {
		t.Fatalf("expected only the fresh submission, got %d entries", len(list))
	}
}

func TestHandler_Statuses(t *testing.T) {
	svc, subs, _, _ := newService()
	ctx := context.Background()
	handler := NewHandler(svc, nil)

	post := func(id, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost,
			"/api/contact-submissions/"+id+"/convert/"+path, bytes.NewReader(nil))
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		w := httptest.NewRecorder()
		if path == "prospect" {
			handler.ConvertToProspect(w, req)
		} else {
			handler.ConvertToClient(w, req)
		}
		return w
	}

	if w := post("missing", "prospect"); w.Code != http.StatusNotFound {
		t.Errorf("unknown submission: expected 404, got %d", w.Code)
	}

	sub, _ := subs.Create(ctx, &submissions.CreateSubmissionRequest{
		Name: "H", Email: "h@i.co", Message: "message long enough",
	})

	if w := post(sub.ID, "prospect"); w.Code != http.StatusCreated {
		t.Fatalf("first conversion: expected 201, got %d", w.Code)
	}
	w := post(sub.ID, "prospect")
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate conversion: expected 409, got %d", w.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Message == "" {
		t.Error("expected success false with a message")
	}
}
