package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/openplanhq/trackd/internal/domain"
	"github.com/openplanhq/trackd/internal/infrastructure/http/handlers"
	"github.com/openplanhq/trackd/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	InvitationsHandler *handlers.InvitationsHandler
	TicketsHandler     *handlers.TicketsHandler
	ProjectsHandler    *handlers.ProjectsHandler
	AdminHandler       *handlers.AdminHandler
	HealthHandler      *handlers.HealthHandler
	RequireAdmin       func(http.Handler) http.Handler // X-Trackd-Admin-Secret for /admin/*
	Log                zerolog.Logger
	Secure             func(http.Handler) http.Handler
	CORS               func(http.Handler) http.Handler
	IPRateLimit        func(http.Handler) http.Handler
	Metrics            bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(middleware.APIVersion("v1"))
	r.Use(chimid.AllowContentType("application/json"))
	r.Use(chimid.SetHeader("Content-Type", "application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/invitations", func(r chi.Router) {
		r.Post("/", cfg.InvitationsHandler.Create)
		r.Get("/pending", cfg.InvitationsHandler.ListPending)
		r.Get("/by-token", cfg.InvitationsHandler.GetByToken)
		r.Post("/accept", cfg.InvitationsHandler.Accept)
		r.Post("/decline", cfg.InvitationsHandler.Decline)
		r.Post("/{id}/resend", cfg.InvitationsHandler.Resend)
	})

	r.Post("/tasks", cfg.TicketsHandler.CreateTask)
	r.Post("/incidents", cfg.TicketsHandler.CreateIncident)

	r.Route("/projects/{id}", func(r chi.Router) {
		r.Get("/", cfg.ProjectsHandler.Get)
		r.Get("/members", cfg.ProjectsHandler.ListMembers)
		r.Get("/tasks", cfg.TicketsHandler.ListByProject(domain.TicketTask))
		r.Get("/incidents", cfg.TicketsHandler.ListByProject(domain.TicketIncident))
	})

	if cfg.AdminHandler != nil && cfg.RequireAdmin != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(cfg.RequireAdmin)
			r.Post("/projects", cfg.AdminHandler.CreateProject)
			r.Post("/users", cfg.AdminHandler.CreateUser)
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
