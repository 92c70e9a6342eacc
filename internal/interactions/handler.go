package interactions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thegrowthaccelerators/consulting-crm/internal/validate"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

// Handler handles HTTP requests for interactions
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new interactions handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Create handles POST /api/interactions requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode interaction", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeValidationError(w, "Invalid interaction data", err)
		return
	}

	in, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create interaction", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("interaction logged", "id", in.ID, "prospectId", in.ProspectID, "type", in.Type)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(in)
}

// List handles GET /api/interactions requests, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list interactions", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// ListByProspect handles GET /api/prospects/{id}/interactions requests.
func (h *Handler) ListByProspect(w http.ResponseWriter, r *http.Request) {
	prospectID := chi.URLParam(r, "id")

	list, err := h.repo.ListByProspect(r.Context(), prospectID)
	if err != nil {
		h.logger.Error("failed to list interactions", "error", err, "prospectId", prospectID)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
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
