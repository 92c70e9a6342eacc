package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thegrowthaccelerators/consulting-crm/internal/clients"
	"github.com/thegrowthaccelerators/consulting-crm/internal/dashboard"
	"github.com/thegrowthaccelerators/consulting-crm/internal/interactions"
	"github.com/thegrowthaccelerators/consulting-crm/internal/notify"
	"github.com/thegrowthaccelerators/consulting-crm/internal/pipeline"
	"github.com/thegrowthaccelerators/consulting-crm/internal/prospects"
	"github.com/thegrowthaccelerators/consulting-crm/internal/submissions"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.Default()
	subRepo := submissions.NewInMemoryRepository()
	prospectRepo := prospects.NewInMemoryRepository()
	clientRepo := clients.NewInMemoryRepository()
	interactionRepo := interactions.NewInMemoryRepository()

	notifier := notify.NewService(notify.NewStubEmailSender(logger), "stub", "ops@example.com", nil, logger)
	pipelineSvc := pipeline.NewService(subRepo, prospectRepo, clientRepo, logger)

	cfg := &Config{
		Logger:              logger,
		SubmissionsHandler:  submissions.NewHandler(subRepo, notifier, nil, logger),
		ProspectsHandler:    prospects.NewHandler(prospectRepo, logger),
		InteractionsHandler: interactions.NewHandler(interactionRepo, logger),
		ClientsHandler:      clients.NewHandler(clientRepo, logger),
		PipelineHandler:     pipeline.NewHandler(pipelineSvc, logger),
		DashboardHandler: dashboard.NewHandler(dashboard.Repositories{
			Submissions:  subRepo,
			Prospects:    prospectRepo,
			Clients:      clientRepo,
			Interactions: interactionRepo,
		}, nil, logger),
		NotifyHandler: notify.NewHandler(notifier, logger),
	}

	return New(cfg)
}

func do(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterContactIntake(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/api/contact", submissions.CreateSubmissionRequest{
		Name:    "Router Test",
		Email:   "router@example.com",
		Message: "Interested in consulting services",
		Package: "startup",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.ID == "" {
		t.Errorf("expected success with id, got %+v", resp)
	}

	rr = do(t, router, http.MethodGet, "/api/contact-submissions", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var list []submissions.ContactSubmission
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(list))
	}
}

func TestRouterConversionFlow(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/api/contact", submissions.CreateSubmissionRequest{
		Name:    "Flow Test",
		Email:   "flow@example.com",
		Message: "Need help with our growth plan",
		Package: "growth",
	})
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	rr = do(t, router, http.MethodPost, "/api/contact-submissions/"+created.ID+"/convert/prospect", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, router, http.MethodPost, "/api/contact-submissions/"+created.ID+"/convert/prospect", nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate conversion, got %d", rr.Code)
	}

	rr = do(t, router, http.MethodGet, "/api/contact-submissions/unconverted", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var unconverted []submissions.ContactSubmission
	if err := json.NewDecoder(rr.Body).Decode(&unconverted); err != nil {
		t.Fatalf("failed to decode unconverted list: %v", err)
	}
	if len(unconverted) != 0 {
		t.Fatalf("expected no unconverted submissions after conversion, got %d", len(unconverted))
	}

	rr = do(t, router, http.MethodPost, "/api/contact-submissions/"+created.ID+"/convert/client", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 for client conversion, got %d: %s", rr.Code, rr.Body.String())
	}
	var c clients.Client
	if err := json.NewDecoder(rr.Body).Decode(&c); err != nil {
		t.Fatalf("failed to decode client: %v", err)
	}
	if c.MonthlyValue != "£2,000" {
		t.Errorf("expected growth pricing, got %q", c.MonthlyValue)
	}
}

func TestRouterProspectAndInteractionRoutes(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/api/prospects", prospects.CreateProspectRequest{
		Name:  "P",
		Email: "p@example.com",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	var p prospects.Prospect
	if err := json.NewDecoder(rr.Body).Decode(&p); err != nil {
		t.Fatalf("failed to decode prospect: %v", err)
	}

	rr = do(t, router, http.MethodPost, "/api/interactions", interactions.CreateInteractionRequest{
		ProspectID: p.ID,
		Type:       interactions.TypeCall,
		Content:    "intro call",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, router, http.MethodGet, "/api/prospects/"+p.ID+"/interactions", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var list []interactions.Interaction
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode interactions: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(list))
	}
}

func TestRouterClientCRUD(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/api/clients", clients.CreateClientRequest{
		Name:         "C",
		Email:        "c@example.com",
		MonthlyValue: "£750",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	var c clients.Client
	if err := json.NewDecoder(rr.Body).Decode(&c); err != nil {
		t.Fatalf("failed to decode client: %v", err)
	}

	rr = do(t, router, http.MethodDelete, "/api/clients/"+c.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	rr = do(t, router, http.MethodDelete, "/api/clients/"+c.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rr.Code)
	}
}

func TestRouterDashboardAndTestEmail(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/api/dashboard", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	rr = do(t, router, http.MethodGet, "/api/dashboard/follow-ups", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	rr = do(t, router, http.MethodPost, "/api/test-email", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected stub sender test email to succeed")
	}
}
