// internal/server/handlers/page.go

package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"trendpulse/internal/domain/trend"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(
	template.New("pages").
		Funcs(template.FuncMap{"displayDate": displayDate}).
		ParseFS(templateFS, "templates/*.html"),
)

// displayDate renders an item date for cards, falling back to the raw cell
func displayDate(s string) string {
	if t, ok := trend.ParseDate(s); ok {
		return t.Format("Jan 2, 2006")
	}
	return s
}

// dashboardView is the data the dashboard template renders
type dashboardView struct {
	Generations []string
	Windows     []trend.Window
	Generation  string
	Window      trend.Window
	Items       []trend.Item
	LastUpdated time.Time
}

// PageHandler renders the dashboard
type PageHandler struct {
	service TrendService
	logger  zerolog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(service TrendService, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		service: service,
		logger:  logger,
	}
}

// Dashboard renders the trend grid for ?gen= and ?time=
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	gen := r.URL.Query().Get("gen")
	if !trend.IsGeneration(gen) {
		gen = trend.Generations[0]
	}
	window := trend.ParseWindow(r.URL.Query().Get("time"))

	filtered := h.service.Filtered(r.Context(), window)

	view := dashboardView{
		Generations: trend.Generations,
		Windows:     trend.Windows,
		Generation:  gen,
		Window:      window,
		Items:       filtered.Cohort(gen),
		LastUpdated: filtered.LastUpdated,
	}

	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, "dashboard.html", view); err != nil {
		h.logger.Error().Err(err).Msg("Error rendering dashboard")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
