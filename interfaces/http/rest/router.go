package rest

import (
	"net/http"

	"threadline-backend/application/commands/bus"
	querybus "threadline-backend/application/queries/bus"
	"threadline-backend/infrastructure/config"
	"threadline-backend/interfaces/http/rest/handlers"
	"threadline-backend/interfaces/http/rest/middleware"
	"threadline-backend/pkg/auth"
	"threadline-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	cfg        *config.Config
	metrics    *observability.Collector
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.threadline.app"},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.cfg.EnableMetrics && rt.metrics != nil {
		router.Handle("/metrics", promhttp.HandlerFor(rt.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authenticate())

		r.Route("/snippets", func(r chi.Router) {
			snippetHandler := handlers.NewSnippetHandler(rt.commandBus, rt.queryBus, rt.logger)
			r.Post("/", snippetHandler.CreateSnippet)
			r.Get("/", snippetHandler.ListSnippets)
			r.Get("/{snippetID}", snippetHandler.GetSnippet)
			r.Delete("/{snippetID}", snippetHandler.DeleteSnippet)

			threadHandler := handlers.NewThreadHandler(rt.queryBus, rt.logger)
			r.Get("/{snippetID}/thread", threadHandler.GetThreadContext)
		})

		r.Route("/edges", func(r chi.Router) {
			edgeHandler := handlers.NewEdgeHandler(rt.commandBus, rt.logger)
			r.Post("/", edgeHandler.CreateEdge)
		})
	})

	return router
}

// authenticate builds the auth middleware from configuration
func (rt *Router) authenticate() func(next http.Handler) http.Handler {
	secret := rt.cfg.JWTSecret
	if secret == "" {
		secret = "development-secret-change-in-production"
	}

	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    rt.cfg.JWTIssuer,
	})
	if err != nil {
		rt.logger.Error("Failed to build JWT validator", zap.Error(err))
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "authentication unavailable", http.StatusServiceUnavailable)
			})
		}
	}

	return middleware.Authenticate(validator, rt.logger)
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
