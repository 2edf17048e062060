package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"contentplanner/internal/middleware"
	"contentplanner/internal/render"
)

const maxVisualRequestBytes = 8 << 20

// RenderVisual renders a single ad-hoc visual. Rendering never fails the
// request; a fallback result carries the original background.
func (a *App) RenderVisual(w http.ResponseWriter, r *http.Request) {
	if a.Renderer == nil {
		a.error(w, http.StatusServiceUnavailable, "renderer_disabled", "renderer not configured")
		return
	}
	var req render.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxVisualRequestBytes))
	if err := dec.Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.BackgroundURL) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "background_url required")
		return
	}
	if strings.TrimSpace(req.Locale) == "" {
		req.Locale = middleware.LocaleFromContext(r.Context())
	}
	res := a.Renderer.Render(r.Context(), req)
	a.json(w, http.StatusOK, res)
}
