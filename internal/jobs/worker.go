package jobs

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/platform/envutil"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/repos"
)

type Worker struct {
	db           *gorm.DB
	log          *logger.Logger
	repo         repos.JobRunRepo
	registry     *Registry
	pollInterval time.Duration
	maxAttempts  int
	retryDelay   time.Duration
	staleRunning time.Duration
}

func NewWorker(db *gorm.DB, baseLog *logger.Logger, repo repos.JobRunRepo, registry *Registry) *Worker {
	return &Worker{
		db:           db,
		log:          baseLog.With("component", "JobWorker"),
		repo:         repo,
		registry:     registry,
		pollInterval: 1 * time.Second,
		maxAttempts:  envutil.Int("JOB_MAX_ATTEMPTS", 3),
		retryDelay:   time.Duration(envutil.Int("JOB_RETRY_DELAY_SECONDS", 30)) * time.Second,
		staleRunning: time.Duration(envutil.Int("JOB_STALE_RUNNING_SECONDS", 120)) * time.Second,
	}
}

// Start launches the claim loop. It returns immediately; the loop exits when
// ctx is canceled.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.tick(ctx)
			}
		}
	}()
}

func (w *Worker) tick(ctx context.Context) {
	job, err := w.repo.ClaimNextRunnable(ctx, nil, w.maxAttempts, w.retryDelay, w.staleRunning)
	if err != nil {
		w.log.Warn("ClaimNextRunnable failed", "error", err)
		return
	}
	if job == nil {
		return
	}
	jc := NewContext(ctx, w.db, w.log, job, w.repo)
	h, ok := w.registry.Get(job.JobType)
	if !ok {
		w.log.Warn("No handler registered for job_type", "job_type", job.JobType, "job_id", job.ID)
		jc.Fail("dispatch", fmt.Errorf("no handler registered for job_type=%s", job.JobType))
		return
	}
	// A panicking handler must not take the worker loop down with it.
	func() {
		defer func() {
			if r := recover(); r != nil {
				w.log.Error("Job handler panic", "job_id", job.ID, "job_type", job.JobType, "panic", r)
				jc.Fail("panic", fmt.Errorf("handler panic: %v", r))
			}
		}()
		h.Run(jc)
	}()
}
