// internal/server/handlers/trend.go

package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"trendpulse/internal/domain/trend"
)

// TrendService is what the handlers need from the trends service
type TrendService interface {
	Trends(ctx context.Context) trend.Dataset
	Filtered(ctx context.Context, w trend.Window) trend.Dataset
	IsValidKey(ctx context.Context, key string) bool
}

// Header and query parameter carrying the access key
const (
	APIKeyHeader = "X-API-Key"
	APIKeyParam  = "key"
)

// TrendHandler handles the authenticated trends API
type TrendHandler struct {
	service TrendService
	contact string
	logger  zerolog.Logger
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(service TrendService, contact string, logger zerolog.Logger) *TrendHandler {
	return &TrendHandler{
		service: service,
		contact: contact,
		logger:  logger,
	}
}

// GetTrends returns the full, unfiltered dataset to callers with a valid key
func (h *TrendHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	key := apiKey(r)
	if key == "" || !h.service.IsValidKey(r.Context(), key) {
		h.unauthorized(w, r)
		return
	}

	respondWithJSON(w, http.StatusOK, h.service.Trends(r.Context()))
}

// apiKey reads the access key, header first
func apiKey(r *http.Request) string {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		return key
	}
	return r.URL.Query().Get(APIKeyParam)
}

// unauthorized answers browsers with a page and everything else with JSON
func (h *TrendHandler) unauthorized(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		var buf bytes.Buffer
		if err := pages.ExecuteTemplate(&buf, "unauthorized.html", struct{ Contact string }{h.contact}); err != nil {
			h.logger.Error().Err(err).Msg("Error rendering unauthorized page")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write(buf.Bytes())
		return
	}

	respondWithJSON(w, http.StatusUnauthorized, map[string]string{
		"error":   "Unauthorized",
		"message": "Please contact " + h.contact + " for an API key.",
	})
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
