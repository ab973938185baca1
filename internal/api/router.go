package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openclimb/cragcast/pkg/logger"
)

// Router wires the HTTP routes for the dashboard server
type Router struct {
	handler *Handler
	logger  *logger.Logger
}

// NewRouter creates a new router
func NewRouter(handler *Handler, log *logger.Logger) *Router {
	return &Router{
		handler: handler,
		logger:  log.Named("api-router"),
	}
}

// Routes returns the configured HTTP handler
func (r *Router) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)

	mux.Get("/", r.handler.Dashboard)
	mux.Get("/dashboard.png", r.handler.DashboardImage)
	mux.Get("/healthz", r.handler.Health)

	return mux
}
