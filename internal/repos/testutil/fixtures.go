package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
)

func SeedReport(tb testing.TB, ctx context.Context, tx *gorm.DB, analysisState int) *domain.Report {
	tb.Helper()
	r := &domain.Report{
		ID:               uuid.New(),
		FileName:         "panel.pdf",
		FilePath:         "panel_abc123.pdf",
		MimeType:         "application/pdf",
		SizeBytes:        2048,
		AnalysisComplete: analysisState,
		UploadedAt:       time.Now(),
		UpdatedAt:        time.Now(),
	}
	if analysisState == domain.AnalysisComplete {
		r.ExtractedData = datatypes.JSON([]byte(`{"report_type":"Blood Panel","summary":"ok","parameters":[{"name":"TSH","value":"2.1","unit":"mIU/L","status":"Normal"}]}`))
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed report: %v", err)
	}
	return r
}

func SeedParameter(tb testing.TB, ctx context.Context, tx *gorm.DB, reportID uuid.UUID, name, value string) *domain.Parameter {
	tb.Helper()
	p := &domain.Parameter{
		ID:          uuid.New(),
		ReportID:    reportID,
		Name:        name,
		Value:       value,
		Status:      domain.ParameterNormal,
		ExtractedAt: time.Now(),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed parameter: %v", err)
	}
	return p
}

func SeedContact(tb testing.TB, ctx context.Context, tx *gorm.DB, name, phone string) *domain.EmergencyContact {
	tb.Helper()
	c := &domain.EmergencyContact{
		ID:        uuid.New(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contact: %v", err)
	}
	return c
}

func SeedJobRun(tb testing.TB, ctx context.Context, tx *gorm.DB, jobType string, entityID uuid.UUID, status string) *domain.JobRun {
	tb.Helper()
	eid := entityID
	j := &domain.JobRun{
		ID:       uuid.New(),
		JobType:  jobType,
		EntityID: &eid,
		Status:   status,
		Payload:  datatypes.JSON([]byte(`{"report_id":"` + entityID.String() + `"}`)),
	}
	if err := tx.WithContext(ctx).Create(j).Error; err != nil {
		tb.Fatalf("seed job run: %v", err)
	}
	return j
}

func SeedTask(tb testing.TB, ctx context.Context, tx *gorm.DB, reportID uuid.UUID, desc string) *domain.DailyTask {
	tb.Helper()
	rid := reportID
	t := &domain.DailyTask{
		ID:          uuid.New(),
		ReportID:    &rid,
		TaskType:    "hydration",
		Description: desc,
		CreatedAt:   time.Now(),
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed task: %v", err)
	}
	return t
}
