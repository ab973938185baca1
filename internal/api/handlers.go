package api

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/openclimb/cragcast/internal/conditions"
	"github.com/openclimb/cragcast/internal/config"
	"github.com/openclimb/cragcast/internal/dashboard"
	"github.com/openclimb/cragcast/internal/forecast"
	"github.com/openclimb/cragcast/internal/web"
	"github.com/openclimb/cragcast/pkg/logger"
)

// Handler contains the HTTP handlers
type Handler struct {
	forecasts *forecast.Service
	renderer  *dashboard.Renderer
	pages     *web.Renderer
	config    *config.Config
	logger    *logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(forecasts *forecast.Service, renderer *dashboard.Renderer, pages *web.Renderer, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{
		forecasts: forecasts,
		renderer:  renderer,
		pages:     pages,
		config:    cfg,
		logger:    log.Named("api-handler"),
	}
}

// Dashboard serves the HTML page with the chart embedded as an inline
// base64 PNG. The whole pipeline runs fresh on every request: fetch all
// locations, aggregate, score, render.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// The credential check short-circuits before any network call.
	if h.config.Forecast.APIKey == "" {
		h.missingCredential(w)
		return
	}

	pngBytes, err := h.renderDashboard(r.Context())
	if err != nil {
		if errors.Is(err, dashboard.ErrNoData) {
			h.noData(w)
			return
		}
		h.logger.Error("Dashboard rendering failed", logger.Error(err))
		h.errorPage(w, http.StatusInternalServerError, "Rendering failed", "The dashboard could not be rendered. Check the server logs.")
		return
	}

	encoded := base64.StdEncoding.EncodeToString(pngBytes)
	data := web.IndexData{
		Title:       "Climbing conditions",
		PlotURL:     template.URL("data:image/png;base64," + encoded),
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05 MST"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages.Index(w, data); err != nil {
		h.logger.Error("Failed to render index page", logger.Error(err))
	}

	h.logger.Info("Dashboard request served",
		logger.Int("png_bytes", len(pngBytes)),
		logger.Duration("duration", time.Since(start)))
}

// DashboardImage serves the raw chart PNG, for embedding elsewhere
func (h *Handler) DashboardImage(w http.ResponseWriter, r *http.Request) {
	if h.config.Forecast.APIKey == "" {
		http.Error(w, "forecast API credential not configured", http.StatusInternalServerError)
		return
	}

	pngBytes, err := h.renderDashboard(r.Context())
	if err != nil {
		if errors.Is(err, dashboard.ErrNoData) {
			http.Error(w, "no forecast data available", http.StatusBadGateway)
			return
		}
		h.logger.Error("Dashboard rendering failed", logger.Error(err))
		http.Error(w, "rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(pngBytes); err != nil {
		h.logger.Warn("Failed to write PNG response", logger.Error(err))
	}
}

// Health is a liveness probe
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// renderDashboard runs the fetch, assess, render pipeline and returns the
// encoded PNG
func (h *Handler) renderDashboard(ctx context.Context) ([]byte, error) {
	series := h.forecasts.FetchAll(ctx)

	bands := make([]dashboard.Band, 0, len(series))
	for _, s := range series {
		bands = append(bands, dashboard.Band{
			Title:       s.Location.Name,
			Samples:     s.Samples,
			Assessments: conditions.Assess(s.Samples),
		})
	}

	return h.renderer.RenderPNG(bands)
}

func (h *Handler) missingCredential(w http.ResponseWriter) {
	h.logger.Error("Forecast API credential not configured",
		logger.String("env", h.config.Forecast.APIKeyEnv))
	h.errorPage(w, http.StatusInternalServerError, "Missing API credential",
		fmt.Sprintf("Set the %s environment variable to your forecast provider API key.", h.config.Forecast.APIKeyEnv))
}

func (h *Handler) noData(w http.ResponseWriter) {
	h.logger.Warn("No forecast data available for any location")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	if err := h.pages.NoData(w); err != nil {
		h.logger.Error("Failed to render no-data page", logger.Error(err))
	}
}

func (h *Handler) errorPage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages.Error(w, web.ErrorData{Title: title, Message: message}); err != nil {
		h.logger.Error("Failed to render error page", logger.Error(err))
	}
}
