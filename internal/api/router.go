package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apimiddleware "github.com/iLearnHow/mynextlesson-synthesis/internal/api/middleware"
)

// RouterDeps holds what NewRouter wires into handlers.
type RouterDeps struct {
	Synthesizer LessonSynthesizer
	Metrics     MetricsSource
	Spend       SpendSource
	// Limiter, when set, guards the lesson endpoints.
	Limiter apimiddleware.Limiter
	// TrustProxyHeaders takes the client address from X-Forwarded-For or
	// X-Real-IP and the rate limit identity from X-Client-ID. Enable it only
	// behind a proxy that sets those headers itself.
	TrustProxyHeaders bool
	Logger            *slog.Logger
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	if deps.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	lessons := NewLessonHandler(deps.Synthesizer, deps.Logger)
	stats := NewStatsHandler(deps.Metrics, deps.Spend)

	r.Get("/health", stats.Health)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if deps.Limiter != nil {
				r.Use(apimiddleware.RateLimiter(deps.Limiter, deps.TrustProxyHeaders, nil))
			}
			r.Get("/lessons/{day}", lessons.GetLesson)
			r.Post("/lessons", lessons.CreateLesson)
		})

		r.Get("/stats", stats.Stats)
		r.Get("/budgets", stats.Budgets)
		r.Get("/report", stats.Report)
		r.Get("/costs", stats.Costs)
	})

	return r
}
