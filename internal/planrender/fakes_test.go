package planrender

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"contentplanner/internal/domain"
	"contentplanner/internal/render"
)

type fakePosts struct {
	mu      sync.Mutex
	ctx     map[string]*domain.RenderContext
	saved   map[string][]domain.VisualPlan
	saveErr error
}

func newFakePosts() *fakePosts {
	return &fakePosts{ctx: map[string]*domain.RenderContext{}, saved: map[string][]domain.VisualPlan{}}
}

func (f *fakePosts) LoadRenderContext(ctx context.Context, postID string) (*domain.RenderContext, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rc, ok := f.ctx[postID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rc
	if rc.Output != nil {
		out := *rc.Output
		out.Plans = append([]domain.VisualPlan(nil), rc.Output.Plans...)
		cp.Output = &out
	}
	return &cp, nil
}

func (f *fakePosts) SavePlans(ctx context.Context, postID string, plans []domain.VisualPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[postID] = append([]domain.VisualPlan(nil), plans...)
	return nil
}

type fakeAssets struct {
	mu      sync.Mutex
	created []domain.PostAsset
}

func (f *fakeAssets) CreateMany(ctx context.Context, assets []domain.PostAsset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, assets...)
	return nil
}

func (f *fakeAssets) ListByPost(ctx context.Context, postID string) ([]domain.PostAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.PostAsset
	for _, a := range f.created {
		if a.PostID == postID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeJobs struct {
	mu       sync.Mutex
	queue    []*domain.RenderJob
	all      map[string]*domain.RenderJob
	finished map[string]string
	seq      int
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{all: map[string]*domain.RenderJob{}, finished: map[string]string{}}
}

func (f *fakeJobs) Enqueue(ctx context.Context, postID string) (*domain.RenderJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	job := &domain.RenderJob{ID: fmt.Sprintf("job-%d", f.seq), PostID: postID, Status: domain.JobStatusQueued}
	f.queue = append(f.queue, job)
	f.all[job.ID] = job
	return job, nil
}

func (f *fakeJobs) ClaimNext(ctx context.Context) (*domain.RenderJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return nil, domain.ErrNoJobAvailable
	}
	job := f.queue[0]
	f.queue = f.queue[1:]
	job.Status = domain.JobStatusRunning
	job.Attempts++
	return job, nil
}

func (f *fakeJobs) Finish(ctx context.Context, jobID string, status domain.JobStatus, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.all[jobID]
	if !ok {
		return domain.ErrNotFound
	}
	job.Status = status
	job.ErrorMessage = errMsg
	f.finished[jobID] = string(status)
	return nil
}

func (f *fakeJobs) GetByID(ctx context.Context, jobID string) (*domain.RenderJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.all[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

// scriptedRenderer renders every plan except those whose background URL
// contains "broken".
type scriptedRenderer struct {
	mu       sync.Mutex
	requests []render.Request
}

func (r *scriptedRenderer) Render(ctx context.Context, req render.Request) render.Result {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()
	if strings.Contains(req.BackgroundURL, "broken") {
		return render.Result{Status: render.StatusFallback, Ref: req.BackgroundURL, Reason: "background: status 500"}
	}
	return render.Result{
		Status: render.StatusRendered,
		Ref:    "/" + render.OutputKey(req.PostID, req.PlanID, 1),
	}
}

func (r *scriptedRenderer) byPlan() map[string]render.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]render.Request, len(r.requests))
	for _, req := range r.requests {
		out[req.PlanID] = req
	}
	return out
}

func samplePlan(id, format, style, bg string) domain.VisualPlan {
	return domain.VisualPlan{
		ID:            id,
		Format:        format,
		Style:         style,
		BackgroundURL: bg,
		TextOverlay:   domain.TextOverlay{Headline: "Headline " + id, Sub: "Sub " + id, CTA: "Go"},
		Status:        domain.PlanStatusPending,
	}
}

func sampleContext(postID string, plans ...domain.VisualPlan) *domain.RenderContext {
	return &domain.RenderContext{
		Post: domain.Post{ID: postID, CompanyID: "c1", Title: "Launch", Platform: "INSTAGRAM", PostType: "FEED"},
		Brand: &domain.BrandProfile{
			CompanyID:    "c1",
			CompanyName:  "zenith coffee",
			PrimaryColor: "#FF0000",
			LogoURL:      "https://cdn.example.com/logo.png",
		},
		Output: &domain.ContentOutput{
			Brief:          domain.Brief{Hook: "hook", KeyMessage: "msg", CTA: "cta"},
			PrimaryCaption: "caption",
			Hashtags:       []string{"Coffee", "Growth"},
			Plans:          plans,
		},
	}
}
