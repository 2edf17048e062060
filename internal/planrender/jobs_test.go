package planrender

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"contentplanner/internal/domain"
)

func TestEnqueueAndProcess(t *testing.T) {
	h := newHarness(t, 1)
	h.posts.ctx["post-1"] = sampleContext("post-1", samplePlan("idea_1", "IG_POST", "LIFESTYLE", "https://img.example.com/a.jpg"))

	job, err := h.svc.EnqueuePost(context.Background(), "post-1")
	if err != nil {
		t.Fatalf("EnqueuePost: %v", err)
	}
	if job.Status != domain.JobStatusQueued {
		t.Fatalf("status = %s", job.Status)
	}

	worked, err := h.svc.ProcessNext(context.Background())
	if err != nil || !worked {
		t.Fatalf("ProcessNext = %v, %v", worked, err)
	}
	got, err := h.svc.Job(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("Job: %v", err)
	}
	if got.Status != domain.JobStatusSucceeded || got.Attempts != 1 {
		t.Fatalf("unexpected job %+v", got)
	}
	if len(h.posts.saved["post-1"]) != 1 {
		t.Fatal("job did not render the post")
	}

	worked, err = h.svc.ProcessNext(context.Background())
	if err != nil || worked {
		t.Fatalf("empty queue: ProcessNext = %v, %v", worked, err)
	}
}

func TestEnqueueRejectsUnrenderablePosts(t *testing.T) {
	h := newHarness(t, 1)
	if _, err := h.svc.EnqueuePost(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(h.jobs.all) != 0 {
		t.Fatal("job queued for missing post")
	}
}

func TestProcessNextFailsJob(t *testing.T) {
	h := newHarness(t, 1)
	h.posts.ctx["post-1"] = sampleContext("post-1", samplePlan("idea_1", "", "", "https://img.example.com/a.jpg"))
	job, err := h.svc.EnqueuePost(context.Background(), "post-1")
	if err != nil {
		t.Fatalf("EnqueuePost: %v", err)
	}
	h.posts.saveErr = errors.New("db down")
	if worked, err := h.svc.ProcessNext(context.Background()); err != nil || !worked {
		t.Fatalf("ProcessNext = %v, %v", worked, err)
	}
	got, _ := h.svc.Job(context.Background(), job.ID)
	if got.Status != domain.JobStatusFailed || got.ErrorMessage == "" {
		t.Fatalf("unexpected job %+v", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(t, 1)
	h.posts.ctx["post-1"] = sampleContext("post-1", samplePlan("idea_1", "", "", "https://img.example.com/a.jpg"))
	if _, err := h.svc.EnqueuePost(context.Background(), "post-1"); err != nil {
		t.Fatalf("EnqueuePost: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.svc.Run(ctx, 10*time.Millisecond) }()

	deadline := time.After(2 * time.Second)
	for {
		h.jobs.mu.Lock()
		n := len(h.jobs.finished)
		h.jobs.mu.Unlock()
		if n == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("job was not processed")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestQueueDisabled(t *testing.T) {
	svc, err := NewService(Options{Posts: newFakePosts(), Assets: &fakeAssets{}, Renderer: &scriptedRenderer{}, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if _, err := svc.EnqueuePost(context.Background(), "p"); !errors.Is(err, ErrQueueDisabled) {
		t.Fatalf("expected ErrQueueDisabled, got %v", err)
	}
	if _, err := svc.ProcessNext(context.Background()); !errors.Is(err, ErrQueueDisabled) {
		t.Fatalf("expected ErrQueueDisabled, got %v", err)
	}
}
