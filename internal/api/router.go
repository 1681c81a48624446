package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	_ "github.com/blaisecz/sleep-dashboard/docs"
	"github.com/blaisecz/sleep-dashboard/internal/api/handler"
	"github.com/blaisecz/sleep-dashboard/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	analysisHandler *handler.AnalysisHandler
	patternHandler  *handler.PatternHandler
	coachHandler    *handler.CoachHandler
	metricsHandler  http.Handler
	logger          *slog.Logger
}

// NewRouter wires the handlers. metricsHandler serves /metrics and may be nil.
func NewRouter(
	analysisHandler *handler.AnalysisHandler,
	patternHandler *handler.PatternHandler,
	coachHandler *handler.CoachHandler,
	metricsHandler http.Handler,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		analysisHandler: analysisHandler,
		patternHandler:  patternHandler,
		coachHandler:    coachHandler,
		metricsHandler:  metricsHandler,
		logger:          logger,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Recovery(rt.logger))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	if rt.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", rt.metricsHandler)
	}

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Tracing)

		r.Post("/analysis/upload", rt.analysisHandler.Upload)

		r.Route("/reports/current", func(r chi.Router) {
			r.Get("/", rt.analysisHandler.GetCurrent)
			r.Delete("/", rt.analysisHandler.DeleteCurrent)
		})

		r.Route("/patterns", func(r chi.Router) {
			r.Get("/", rt.patternHandler.Get)
			r.Get("/current", rt.patternHandler.GetCurrent)
			r.Put("/tooltip/{index}", rt.patternHandler.Focus)
			r.Delete("/tooltip", rt.patternHandler.Blur)
		})

		r.Route("/coach", func(r chi.Router) {
			r.Get("/messages", rt.coachHandler.ListMessages)
			r.Post("/messages", rt.coachHandler.PostMessage)
			r.Get("/messages/greeting", rt.coachHandler.GetGreeting)
			r.Post("/feedback", rt.coachHandler.PostFeedback)
			r.Get("/diagnosis", rt.coachHandler.GetDiagnosis)
		})
	})

	return r
}
