package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/thegrowthaccelerators/consulting-crm/internal/observability/metrics"
	"github.com/thegrowthaccelerators/consulting-crm/internal/validate"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

// Notifier delivers the consultation-received email. Implementations are
// expected to be slow and unreliable; the handler never waits on them.
type Notifier interface {
	ConsultationReceived(ctx context.Context, sub *ContactSubmission) error
}

// Handler handles HTTP requests for consultation submissions
type Handler struct {
	repo     Repository
	notifier Notifier
	metrics  *metrics.IntakeMetrics
	logger   *logging.Logger
}

// NewHandler creates a new submissions handler. notifier and m may be nil.
func NewHandler(repo Repository, notifier Notifier, m *metrics.IntakeMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// Create handles POST /api/contact requests. The stored submission is the
// success criterion; the notification email is fired on a detached goroutine
// and its failure is only logged.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode submission", "error", err)
		h.metrics.ObserveSubmission("rejected")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		var fe validate.FieldErrors
		if errors.As(err, &fe) {
			writeFieldErrors(w, fe)
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		h.metrics.ObserveSubmission("rejected")
		h.metrics.ObserveIntakeLatency("rejected", time.Since(start).Seconds())
		return
	}

	sub, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to store submission", "error", err)
		h.metrics.ObserveSubmission("error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("submission stored", "id", sub.ID, "email", sub.Email, "package", sub.Package)
	h.metrics.ObserveSubmission("accepted")
	h.metrics.ObserveIntakeLatency("accepted", time.Since(start).Seconds())

	if h.notifier != nil {
		// Fire and forget: the caller's response must not depend on the
		// email provider.
		go func(sub *ContactSubmission) {
			if err := h.notifier.ConsultationReceived(context.Background(), sub); err != nil {
				h.logger.Error("consultation notification failed", "error", err, "submission_id", sub.ID)
			}
		}(sub)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"id":      sub.ID,
	})
}

// List handles GET /api/contact-submissions requests, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list submissions", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subs)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}

func writeFieldErrors(w http.ResponseWriter, fe validate.FieldErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "Invalid submission data",
		"errors":  fe,
	})
}
