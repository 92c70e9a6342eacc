package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/thegrowthaccelerators/consulting-crm/internal/clients"
	"github.com/thegrowthaccelerators/consulting-crm/internal/dashboard"
	httpmiddleware "github.com/thegrowthaccelerators/consulting-crm/internal/http/middleware"
	"github.com/thegrowthaccelerators/consulting-crm/internal/interactions"
	"github.com/thegrowthaccelerators/consulting-crm/internal/notify"
	"github.com/thegrowthaccelerators/consulting-crm/internal/pipeline"
	"github.com/thegrowthaccelerators/consulting-crm/internal/prospects"
	"github.com/thegrowthaccelerators/consulting-crm/internal/submissions"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	SubmissionsHandler  *submissions.Handler
	ProspectsHandler    *prospects.Handler
	InteractionsHandler *interactions.Handler
	ClientsHandler      *clients.Handler
	PipelineHandler     *pipeline.Handler
	DashboardHandler    *dashboard.Handler
	NotifyHandler       *notify.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// Intake rate limiting (public contact form)
	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		// Public intake, rate limited per client IP.
		api.Group(func(public chi.Router) {
			if cfg.RateLimitRPS > 0 {
				public.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
			}
			public.Post("/contact", cfg.SubmissionsHandler.Create)
		})

		api.Route("/contact-submissions", func(r chi.Router) {
			r.Get("/", cfg.SubmissionsHandler.List)
			if cfg.PipelineHandler != nil {
				r.Get("/unconverted", cfg.PipelineHandler.Unconverted)
				r.Post("/{id}/convert/prospect", cfg.PipelineHandler.ConvertToProspect)
				r.Post("/{id}/convert/client", cfg.PipelineHandler.ConvertToClient)
			}
		})

		api.Route("/prospects", func(r chi.Router) {
			r.Post("/", cfg.ProspectsHandler.Create)
			r.Get("/", cfg.ProspectsHandler.List)
			r.Put("/{id}", cfg.ProspectsHandler.Update)
			if cfg.InteractionsHandler != nil {
				r.Get("/{id}/interactions", cfg.InteractionsHandler.ListByProspect)
			}
		})

		api.Route("/interactions", func(r chi.Router) {
			r.Post("/", cfg.InteractionsHandler.Create)
			r.Get("/", cfg.InteractionsHandler.List)
		})

		api.Route("/clients", func(r chi.Router) {
			r.Post("/", cfg.ClientsHandler.Create)
			r.Get("/", cfg.ClientsHandler.List)
			r.Put("/{id}", cfg.ClientsHandler.Update)
			r.Delete("/{id}", cfg.ClientsHandler.Delete)
		})

		if cfg.DashboardHandler != nil {
			api.Get("/dashboard", cfg.DashboardHandler.Overview)
			api.Get("/dashboard/follow-ups", cfg.DashboardHandler.FollowUps)
		}

		if cfg.NotifyHandler != nil {
			api.Post("/test-email", cfg.NotifyHandler.TestEmail)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
