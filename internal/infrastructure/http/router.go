package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/http/handlers"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	BusinessHandler *handlers.BusinessHandler
	UsersHandler    *handlers.UsersHandler
	HealthHandler   *handlers.HealthHandler
	RequireAdmin    func(http.Handler) http.Handler // X-Tuagenda-Admin-Secret for mutating routes
	Log             zerolog.Logger
	Secure          func(http.Handler) http.Handler
	CORS            func(http.Handler) http.Handler
	IPRateLimit     func(http.Handler) http.Handler
	APIVersion      string
	Metrics         bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	r.Use(chimid.AllowContentType("application/json"))
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	if cfg.APIVersion != "" {
		r.Use(middleware.APIVersion(cfg.APIVersion))
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	requireAdmin := cfg.RequireAdmin
	if requireAdmin == nil {
		requireAdmin = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/businesses", func(r chi.Router) {
		r.Get("/", cfg.BusinessHandler.List)
		r.Get("/slug/{slug}", cfg.BusinessHandler.GetBySlug)
		r.Get("/{id}", cfg.BusinessHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", cfg.BusinessHandler.Create)
			r.Patch("/{id}", cfg.BusinessHandler.Update)
			r.Delete("/{id}", cfg.BusinessHandler.Delete)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", cfg.UsersHandler.List)
		r.Get("/by-email", cfg.UsersHandler.GetByEmail)
		r.Get("/{id}", cfg.UsersHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", cfg.UsersHandler.Create)
			r.Patch("/{id}", cfg.UsersHandler.Update)
		})
	})

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
