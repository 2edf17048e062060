package planrender

import (
	"context"
	"errors"
	"time"

	"contentplanner/internal/domain"
)

// ErrQueueDisabled is returned by queue operations on a Service built
// without a job repository.
var ErrQueueDisabled = errors.New("planrender: render queue not configured")

// EnqueuePost validates that postID can be rendered and queues a job for it.
func (s *Service) EnqueuePost(ctx context.Context, postID string) (*domain.RenderJob, error) {
	if s.jobs == nil {
		return nil, ErrQueueDisabled
	}
	rc, err := s.loadRenderable(ctx, postID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.Enqueue(ctx, rc.Post.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("job_id", job.ID).Str("post_id", job.PostID).Msg("planrender: render job queued")
	return job, nil
}

// Job returns a render job by id.
func (s *Service) Job(ctx context.Context, jobID string) (*domain.RenderJob, error) {
	if s.jobs == nil {
		return nil, ErrQueueDisabled
	}
	return s.jobs.GetByID(ctx, jobID)
}

// ProcessNext claims one queued job and renders its post. It reports false
// when the queue was empty. A failed render pass fails the job, not the call.
func (s *Service) ProcessNext(ctx context.Context) (bool, error) {
	if s.jobs == nil {
		return false, ErrQueueDisabled
	}
	job, err := s.jobs.ClaimNext(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoJobAvailable) {
			return false, nil
		}
		return false, err
	}

	logger := s.logger.With().Str("job_id", job.ID).Str("post_id", job.PostID).Logger()
	logger.Info().Int("attempt", job.Attempts).Msg("planrender: picked job")

	status, msg := domain.JobStatusSucceeded, ""
	if _, err := s.RenderPost(ctx, job.PostID); err != nil {
		if ctx.Err() != nil {
			// Leave the job RUNNING; stale jobs are requeued on the next start.
			return true, ctx.Err()
		}
		status, msg = domain.JobStatusFailed, err.Error()
		logger.Error().Err(err).Msg("planrender: job failed")
	}
	if err := s.jobs.Finish(ctx, job.ID, status, msg); err != nil {
		return true, err
	}
	return true, nil
}

// Run processes jobs until ctx is canceled, sleeping pollInterval whenever
// the queue is empty or a claim fails.
func (s *Service) Run(ctx context.Context, pollInterval time.Duration) error {
	if s.jobs == nil {
		return ErrQueueDisabled
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	s.logger.Info().Dur("poll_interval", pollInterval).Msg("planrender: worker started")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		worked, err := s.ProcessNext(ctx)
		if err != nil && ctx.Err() == nil {
			s.logger.Error().Err(err).Msg("planrender: process job")
		}
		if worked && err == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
