package domain

import "context"

// PostRepository loads render input and stores updated plans.
type PostRepository interface {
	// LoadRenderContext returns ErrNotFound when the post does not exist.
	LoadRenderContext(ctx context.Context, postID string) (*RenderContext, error)
	SavePlans(ctx context.Context, postID string, plans []VisualPlan) error
}

// PostAssetRepository persists rendered files attached to posts.
type PostAssetRepository interface {
	CreateMany(ctx context.Context, assets []PostAsset) error
	ListByPost(ctx context.Context, postID string) ([]PostAsset, error)
}

// RenderJobRepository is the queue behind asynchronous rendering.
type RenderJobRepository interface {
	Enqueue(ctx context.Context, postID string) (*RenderJob, error)
	// ClaimNext returns ErrNoJobAvailable when the queue is empty.
	ClaimNext(ctx context.Context) (*RenderJob, error)
	Finish(ctx context.Context, jobID string, status JobStatus, errMsg string) error
	GetByID(ctx context.Context, jobID string) (*RenderJob, error)
}
