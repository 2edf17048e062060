package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"contentplanner/internal/domain"
)

// RenderPost renders every visual plan of a post and returns the updated
// plans.
func (a *App) RenderPost(w http.ResponseWriter, r *http.Request) {
	postID := strings.TrimSpace(chi.URLParam(r, "postID"))
	if postID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "postID required")
		return
	}
	out, err := a.Plans.RenderPost(r.Context(), postID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, out)
}

// EnqueueRender queues a background render of a post.
func (a *App) EnqueueRender(w http.ResponseWriter, r *http.Request) {
	postID := strings.TrimSpace(chi.URLParam(r, "postID"))
	if postID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "postID required")
		return
	}
	job, err := a.Plans.EnqueuePost(r.Context(), postID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/render-jobs/"+job.ID)
	a.json(w, http.StatusAccepted, job)
}

func (a *App) RenderJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := strings.TrimSpace(chi.URLParam(r, "jobID"))
	if jobID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "jobID required")
		return
	}
	job, err := a.Plans.Job(r.Context(), jobID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, job)
}

// ListPostAssets lists the rendered files recorded for a post.
func (a *App) ListPostAssets(w http.ResponseWriter, r *http.Request) {
	postID := strings.TrimSpace(chi.URLParam(r, "postID"))
	if postID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "postID required")
		return
	}
	assets, err := a.Plans.PostAssets(r.Context(), postID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if assets == nil {
		assets = []domain.PostAsset{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": assets})
}

// ExportPost streams a zip bundle of a post's copy, schedule and visuals.
func (a *App) ExportPost(w http.ResponseWriter, r *http.Request) {
	postID := strings.TrimSpace(chi.URLParam(r, "postID"))
	if postID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "postID required")
		return
	}
	export, err := a.Plans.ExportPost(r.Context(), postID, a.Artifacts)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Archive)
}
