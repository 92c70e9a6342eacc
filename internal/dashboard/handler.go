package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

// Handler serves the dashboard views.
type Handler struct {
	repos    Repositories
	gatherer prometheus.Gatherer
	logger   *logging.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(repos Repositories, gatherer prometheus.Gatherer, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repos:    repos,
		gatherer: gatherer,
		logger:   logger,
	}
}

// Overview handles GET /api/dashboard requests.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	subs, pros, cls, _, err := h.repos.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load dashboard data", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	overview := ComputeOverview(subs, pros, cls)
	overview.Notifications = SnapshotNotifications(h.gatherer)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(overview)
}

// FollowUps handles GET /api/dashboard/follow-ups requests.
func (h *Handler) FollowUps(w http.ResponseWriter, r *http.Request) {
	_, pros, _, ins, err := h.repos.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load follow-up data", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	view := ComputeFollowUps(time.Now(), pros, ins)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
