package pipeline

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thegrowthaccelerators/consulting-crm/internal/submissions"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

// Handler exposes the conversion actions over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new pipeline handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Unconverted handles GET /api/contact-submissions/unconverted, the admin
// view of submissions not yet tracked as a prospect or client.
func (h *Handler) Unconverted(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.UnconvertedSubmissions(r.Context())
	if err != nil {
		h.logger.Error("failed to list unconverted submissions", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// ConvertToProspect handles POST /api/contact-submissions/{id}/convert/prospect.
func (h *Handler) ConvertToProspect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.service.ConvertToProspect(r.Context(), id)
	switch {
	case errors.Is(err, submissions.ErrSubmissionNotFound):
		writeError(w, http.StatusNotFound, "Submission not found")
		return
	case errors.Is(err, ErrAlreadyProspect):
		writeError(w, http.StatusConflict, "A prospect already exists for this email")
		return
	case err != nil:
		h.logger.Error("conversion to prospect failed", "error", err, "submissionId", id)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// ConvertToClient handles POST /api/contact-submissions/{id}/convert/client.
func (h *Handler) ConvertToClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.service.ConvertToClient(r.Context(), id)
	switch {
	case errors.Is(err, submissions.ErrSubmissionNotFound):
		writeError(w, http.StatusNotFound, "Submission not found")
		return
	case errors.Is(err, ErrAlreadyClient):
		writeError(w, http.StatusConflict, "A client already exists for this email")
		return
	case err != nil:
		h.logger.Error("conversion to client failed", "error", err, "submissionId", id)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
