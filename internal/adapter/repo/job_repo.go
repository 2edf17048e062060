package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentplanner/internal/domain"
	"contentplanner/internal/infra"
	"contentplanner/internal/sqlinline"
)

// JobRepositoryPG implements domain.RenderJobRepository on a Postgres table
// used as a queue.
type JobRepositoryPG struct {
	db infra.SQLExecutor
}

// NewJobRepository creates a render job repository.
func NewJobRepository(db infra.SQLExecutor) *JobRepositoryPG {
	return &JobRepositoryPG{db: db}
}

// Enqueue inserts a queued job for postID.
func (r *JobRepositoryPG) Enqueue(ctx context.Context, postID string) (*domain.RenderJob, error) {
	job, err := scanJob(r.db.QueryRow(ctx, sqlinline.QEnqueueRenderJob, uuid.NewString(), postID))
	if err != nil {
		return nil, fmt.Errorf("enqueue render job: %w", err)
	}
	return job, nil
}

// ClaimNext moves the oldest queued job to RUNNING. Concurrent workers skip
// rows locked by each other.
func (r *JobRepositoryPG) ClaimNext(ctx context.Context) (*domain.RenderJob, error) {
	job, err := scanJob(r.db.QueryRow(ctx, sqlinline.QClaimRenderJob))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNoJobAvailable
		}
		return nil, fmt.Errorf("claim render job: %w", err)
	}
	return job, nil
}

// Finish records the terminal status of a job.
func (r *JobRepositoryPG) Finish(ctx context.Context, jobID string, status domain.JobStatus, errMsg string) error {
	if !status.Terminal() {
		return fmt.Errorf("%w: status %q is not terminal", domain.ErrInvalidInput, status)
	}
	tag, err := r.db.Exec(ctx, sqlinline.QFinishRenderJob, jobID, string(status), errMsg)
	if err != nil {
		return fmt.Errorf("finish render job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID fetches a job by its identifier.
func (r *JobRepositoryPG) GetByID(ctx context.Context, jobID string) (*domain.RenderJob, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		return nil, domain.ErrNotFound
	}
	job, err := scanJob(r.db.QueryRow(ctx, sqlinline.QSelectRenderJob, jobID))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get render job: %w", err)
	}
	return job, nil
}

// RequeueStale returns RUNNING jobs untouched for longer than olderThan to the
// queue, so a crashed worker does not strand them.
func (r *JobRepositoryPG) RequeueStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := r.db.Exec(ctx, sqlinline.QRequeueStaleRenderJobs, int(olderThan.Seconds()))
	if err != nil {
		return 0, fmt.Errorf("requeue stale render jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.RenderJob, error) {
	var (
		job    domain.RenderJob
		status string
	)
	if err := row.Scan(&job.ID, &job.PostID, &status, &job.Attempts, &job.ErrorMessage, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return nil, err
	}
	job.Status = domain.JobStatus(status)
	return &job, nil
}

var _ domain.RenderJobRepository = (*JobRepositoryPG)(nil)
