package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"contentplanner/internal/domain"
	"contentplanner/internal/planrender"
	"contentplanner/internal/render"
)

// PlanService is the slice of planrender.Service the handlers use.
type PlanService interface {
	RenderPost(ctx context.Context, postID string) (*planrender.Outcome, error)
	EnqueuePost(ctx context.Context, postID string) (*domain.RenderJob, error)
	Job(ctx context.Context, jobID string) (*domain.RenderJob, error)
	ExportPost(ctx context.Context, postID string, src planrender.ArtifactSource) (*planrender.Export, error)
	PostAssets(ctx context.Context, postID string) ([]domain.PostAsset, error)
}

// App holds the dependencies shared by every handler.
type App struct {
	Plans     PlanService
	Renderer  render.Renderer
	Artifacts planrender.ArtifactSource
	Logger    zerolog.Logger
	// Ping checks backing services for the health endpoint. Optional.
	Ping func(ctx context.Context) error
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]errorBody{"error": {Code: errCode, Message: message}})
}

// fail maps service errors onto HTTP responses.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrBrandProfileRequired):
		a.error(w, http.StatusBadRequest, "brand_profile_required", err.Error())
	case errors.Is(err, domain.ErrContentNotFound):
		a.error(w, http.StatusBadRequest, "content_not_found", err.Error())
	case errors.Is(err, domain.ErrNoVisualPlans):
		a.error(w, http.StatusBadRequest, "no_visual_plans", err.Error())
	case errors.Is(err, planrender.ErrQueueDisabled):
		a.error(w, http.StatusServiceUnavailable, "queue_disabled", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		a.error(w, http.StatusServiceUnavailable, "canceled", "request canceled")
	default:
		a.logger(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// logger prefers the request scoped logger installed by the middleware.
func (a *App) logger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}
