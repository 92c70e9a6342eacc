package notify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/thegrowthaccelerators/consulting-crm/internal/submissions"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

// Handler exposes the notification test endpoint.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new notify handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// TestEmail handles POST /api/test-email. It verifies sender configuration
// and pushes a synthetic consultation notification through the active
// provider. Provider failure is reported in the body, never as a 5xx.
func (h *Handler) TestEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Verify(); err != nil {
		writeResult(w, false, err.Error())
		return
	}

	sub := &submissions.ContactSubmission{
		ID:        "test",
		Name:      "Test Submission",
		Email:     "test@example.com",
		Message:   "This is a test of the consultation notification pipeline.",
		Package:   "startup",
		CreatedAt: time.Now().UTC(),
	}

	if err := h.service.ConsultationReceived(r.Context(), sub); err != nil {
		h.logger.Error("test email failed", "error", err)
		writeResult(w, false, fmt.Sprintf("Test email failed: %v", err))
		return
	}

	writeResult(w, true, fmt.Sprintf("Test email sent via %s", h.service.Provider()))
}

func writeResult(w http.ResponseWriter, success bool, message string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
	})
}
