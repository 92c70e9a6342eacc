package prospects

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thegrowthaccelerators/consulting-crm/internal/validate"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

// Handler handles HTTP requests for prospects
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new prospects handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Create handles POST /api/prospects requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode prospect", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeValidationError(w, "Invalid prospect data", err)
		return
	}

	p, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create prospect", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("prospect created", "id", p.ID, "email", p.Email, "status", p.Status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// List handles GET /api/prospects requests, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list prospects", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Update handles PUT /api/prospects/{id} requests with a partial body.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode prospect update", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeValidationError(w, "Invalid prospect data", err)
		return
	}

	p, err := h.repo.Update(r.Context(), id, &req)
	if errors.Is(err, ErrProspectNotFound) {
		writeError(w, http.StatusNotFound, "Prospect not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to update prospect", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("prospect updated", "id", p.ID, "status", p.Status, "priority", p.Priority)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}

func writeValidationError(w http.ResponseWriter, message string, err error) {
	var fe validate.FieldErrors
	if !errors.As(err, &fe) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
		"errors":  fe,
	})
}
