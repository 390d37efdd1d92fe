package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/repos"
	"github.com/evelahealth/evela-backend/internal/repos/testutil"
)

func TestJobRunClaimQueued(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := repos.NewJobRunRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	reportID := uuid.New()
	seeded := testutil.SeedJobRun(t, ctx, tx, domain.JobTypeReportExtraction, reportID, domain.JobQueued)

	claimed, err := repo.ClaimNextRunnable(ctx, tx, 3, 30*time.Second, 2*time.Minute)
	if err != nil {
		t.Fatalf("ClaimNextRunnable: %v", err)
	}
	if claimed == nil || claimed.ID != seeded.ID {
		t.Fatalf("claimed %v, want %s", claimed, seeded.ID)
	}
	if claimed.Status != domain.JobRunning {
		t.Fatalf("claimed status = %q, want running", claimed.Status)
	}
	if claimed.Attempts != 1 {
		t.Fatalf("claimed attempts = %d, want 1", claimed.Attempts)
	}

	// Nothing else is runnable now.
	again, err := repo.ClaimNextRunnable(ctx, tx, 3, 30*time.Second, 2*time.Minute)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if again != nil {
		t.Fatalf("second claim returned %v, want nil", again)
	}
}

func TestJobRunFailedRetryRespectsDelayAndBudget(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := repos.NewJobRunRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	seeded := testutil.SeedJobRun(t, ctx, tx, domain.JobTypeReportExtraction, uuid.New(), domain.JobFailed)
	recent := time.Now()
	if err := tx.Model(seeded).Updates(map[string]interface{}{
		"attempts":      1,
		"last_error_at": recent,
	}).Error; err != nil {
		t.Fatalf("set failure fields: %v", err)
	}

	// Delay not yet elapsed.
	claimed, err := repo.ClaimNextRunnable(ctx, tx, 3, 30*time.Second, 2*time.Minute)
	if err != nil {
		t.Fatalf("ClaimNextRunnable: %v", err)
	}
	if claimed != nil {
		t.Fatalf("claimed a job whose retry delay has not elapsed: %v", claimed)
	}

	// Delay elapsed: claimable.
	old := time.Now().Add(-time.Minute)
	if err := tx.Model(seeded).Update("last_error_at", old).Error; err != nil {
		t.Fatalf("backdate failure: %v", err)
	}
	claimed, err = repo.ClaimNextRunnable(ctx, tx, 3, 30*time.Second, 2*time.Minute)
	if err != nil {
		t.Fatalf("ClaimNextRunnable: %v", err)
	}
	if claimed == nil || claimed.ID != seeded.ID {
		t.Fatalf("retry claim = %v, want %s", claimed, seeded.ID)
	}

	// Budget exhausted: never claimable again.
	if err := tx.Model(seeded).Updates(map[string]interface{}{
		"status":        domain.JobFailed,
		"attempts":      3,
		"last_error_at": old,
	}).Error; err != nil {
		t.Fatalf("exhaust budget: %v", err)
	}
	claimed, err = repo.ClaimNextRunnable(ctx, tx, 3, 30*time.Second, 2*time.Minute)
	if err != nil {
		t.Fatalf("ClaimNextRunnable: %v", err)
	}
	if claimed != nil {
		t.Fatalf("claimed a job past its attempt budget: %v", claimed)
	}
}

func TestJobRunStaleRunningReclaim(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := repos.NewJobRunRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	seeded := testutil.SeedJobRun(t, ctx, tx, domain.JobTypeReportExtraction, uuid.New(), domain.JobRunning)
	stale := time.Now().Add(-10 * time.Minute)
	if err := tx.Model(seeded).Updates(map[string]interface{}{
		"heartbeat_at": stale,
		"locked_at":    stale,
		"attempts":     1,
	}).Error; err != nil {
		t.Fatalf("make stale: %v", err)
	}

	claimed, err := repo.ClaimNextRunnable(ctx, tx, 3, 30*time.Second, 2*time.Minute)
	if err != nil {
		t.Fatalf("ClaimNextRunnable: %v", err)
	}
	if claimed == nil || claimed.ID != seeded.ID {
		t.Fatalf("stale reclaim = %v, want %s", claimed, seeded.ID)
	}
}

func TestJobRunGetLatestByEntity(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := repos.NewJobRunRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	reportID := uuid.New()
	testutil.SeedJobRun(t, ctx, tx, domain.JobTypeReportExtraction, reportID, domain.JobFailed)
	second := testutil.SeedJobRun(t, ctx, tx, domain.JobTypeReportExtraction, reportID, domain.JobQueued)
	if err := tx.Model(second).Update("created_at", time.Now().Add(time.Second)).Error; err != nil {
		t.Fatalf("order jobs: %v", err)
	}

	got, err := repo.GetLatestByEntity(ctx, tx, domain.JobTypeReportExtraction, reportID)
	if err != nil {
		t.Fatalf("GetLatestByEntity: %v", err)
	}
	if got == nil || got.ID != second.ID {
		t.Fatalf("latest = %v, want %s", got, second.ID)
	}
}
