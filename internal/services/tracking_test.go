package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/evelahealth/evela-backend/internal/repos"
	"github.com/evelahealth/evela-backend/internal/repos/testutil"
	"github.com/evelahealth/evela-backend/internal/services"
)

func newTrackingService(t *testing.T) services.TrackingService {
	t.Helper()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	return services.NewTrackingService(tx, log,
		repos.NewPeriodCycleRepo(tx, log),
		repos.NewWaterIntakeRepo(tx, log),
		repos.NewStepsRepo(tx, log))
}

func TestWaterTotalsAccumulate(t *testing.T) {
	svc := newTrackingService(t)
	ctx := context.Background()

	_, total, err := svc.LogWater(ctx, 250)
	if err != nil {
		t.Fatalf("LogWater: %v", err)
	}
	if total.Total != 250 || total.Entries != 1 {
		t.Fatalf("after first log: %+v", total)
	}

	_, total, err = svc.LogWater(ctx, 500)
	if err != nil {
		t.Fatalf("LogWater: %v", err)
	}
	if total.Total != 750 || total.Entries != 2 {
		t.Fatalf("after second log: %+v", total)
	}
}

func TestWaterRejectsNonPositive(t *testing.T) {
	svc := newTrackingService(t)
	if _, _, err := svc.LogWater(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if _, _, err := svc.LogWater(context.Background(), -10); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestStepsTotals(t *testing.T) {
	svc := newTrackingService(t)
	ctx := context.Background()

	_, total, err := svc.LogSteps(ctx, 4000)
	if err != nil {
		t.Fatalf("LogSteps: %v", err)
	}
	if total.Total != 4000 {
		t.Fatalf("steps total = %d", total.Total)
	}
	_, total, err = svc.LogSteps(ctx, 3500)
	if err != nil {
		t.Fatalf("LogSteps: %v", err)
	}
	if total.Total != 7500 {
		t.Fatalf("steps total = %d, want 7500", total.Total)
	}
}

func TestPeriodValidation(t *testing.T) {
	svc := newTrackingService(t)
	ctx := context.Background()

	if _, err := svc.LogPeriod(ctx, services.PeriodInput{}); err == nil {
		t.Fatal("expected error for missing start date")
	}

	start := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	badEnd := start.Add(-48 * time.Hour)
	if _, err := svc.LogPeriod(ctx, services.PeriodInput{StartDate: start, EndDate: &badEnd}); err == nil {
		t.Fatal("expected error for end before start")
	}

	end := start.Add(5 * 24 * time.Hour)
	cycle, err := svc.LogPeriod(ctx, services.PeriodInput{StartDate: start, EndDate: &end, FlowLevel: "medium"})
	if err != nil {
		t.Fatalf("LogPeriod: %v", err)
	}
	if cycle.FlowLevel != "medium" {
		t.Fatalf("flow level = %q", cycle.FlowLevel)
	}

	cycles, err := svc.ListPeriods(ctx)
	if err != nil || len(cycles) != 1 {
		t.Fatalf("ListPeriods: %v, n=%d", err, len(cycles))
	}
	if err := svc.DeletePeriod(ctx, cycle.ID); err != nil {
		t.Fatalf("DeletePeriod: %v", err)
	}
}
