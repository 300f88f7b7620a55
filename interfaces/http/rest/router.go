// Package rest wires the HTTP surface of the journal API.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"moodlog-backend/infrastructure/config"
	"moodlog-backend/infrastructure/observability"
	"moodlog-backend/interfaces/http/rest/handlers"
	"moodlog-backend/interfaces/http/rest/middleware"
	pkgerrors "moodlog-backend/pkg/errors"
)

// Handlers bundles the per-resource handlers the router mounts
type Handlers struct {
	Entries     *handlers.EntryHandler
	Insights    *handlers.InsightsHandler
	Portability *handlers.PortabilityHandler
	Assessments *handlers.AssessmentHandler
	Reminders   *handlers.ReminderHandler
	Sync        *handlers.SyncHandler
}

// Router creates and configures the HTTP router
type Router struct {
	handlers     Handlers
	collector    *observability.Collector
	errorHandler *pkgerrors.ErrorHandler
	cfg          *config.Config
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	h Handlers,
	collector *observability.Collector,
	errorHandler *pkgerrors.ErrorHandler,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		handlers:     h,
		collector:    collector,
		errorHandler: errorHandler,
		cfg:          cfg,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.cfg.EnableMetrics {
		router.Use(middleware.Metrics(rt.collector))
	}

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Probes and metrics
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.cfg.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(rt.collector.GetRegistry(), promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", rt.handlers.Entries.LogEntry)
			r.Get("/", rt.handlers.Entries.ListEntries)
			r.Get("/recent", rt.handlers.Entries.RecentEntries)
			r.Get("/search", rt.handlers.Entries.SearchEntries)
		})

		r.Route("/insights", func(r chi.Router) {
			r.Get("/trends", rt.handlers.Insights.Trends)
			r.Get("/patterns", rt.handlers.Insights.Patterns)
		})

		r.Get("/export", rt.handlers.Portability.Export)
		r.Post("/import", rt.handlers.Portability.Import)

		r.Route("/sync", func(r chi.Router) {
			r.Post("/hydrate", rt.handlers.Sync.Hydrate)
			r.Post("/backfill", rt.handlers.Sync.Backfill)
		})

		r.Route("/assessments", func(r chi.Router) {
			r.Get("/", rt.handlers.Assessments.ListAssessments)
			r.Get("/{assessmentID}", rt.handlers.Assessments.GetAssessment)
			r.Post("/{assessmentID}/score", rt.handlers.Assessments.ScoreAssessment)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Post("/", rt.handlers.Reminders.ScheduleReminder)
			r.Get("/", rt.handlers.Reminders.ListReminders)
			r.Delete("/{jobID}", rt.handlers.Reminders.CancelReminder)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests. The journal itself is
// in memory, so once the process serves traffic it is ready.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
