package clients

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thegrowthaccelerators/consulting-crm/internal/validate"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

// Handler handles HTTP requests for clients
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new clients handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Create handles POST /api/clients requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode client", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeValidationError(w, "Invalid client data", err)
		return
	}

	c, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create client", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("client created", "id", c.ID, "email", c.Email, "monthlyValue", c.MonthlyValue)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// List handles GET /api/clients requests, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list clients", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Update handles PUT /api/clients/{id} requests with a partial body.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode client update", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeValidationError(w, "Invalid client data", err)
		return
	}

	c, err := h.repo.Update(r.Context(), id, &req)
	if errors.Is(err, ErrClientNotFound) {
		writeError(w, http.StatusNotFound, "Client not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to update client", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("client updated", "id", c.ID, "status", c.Status)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Delete handles DELETE /api/clients/{id} requests.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete client", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "Client not found")
		return
	}

	h.logger.Info("client deleted", "id", id)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true})
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
