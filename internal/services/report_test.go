package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/apierr"
	"github.com/evelahealth/evela-backend/internal/repos"
	"github.com/evelahealth/evela-backend/internal/repos/testutil"
	"github.com/evelahealth/evela-backend/internal/services"
	"github.com/evelahealth/evela-backend/internal/storage"
)

func newReportService(t *testing.T) (services.ReportService, repos.ReportRepo, repos.JobRunRepo, context.Context) {
	t.Helper()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	t.Setenv("UPLOADS_DIR", t.TempDir())
	store, err := storage.NewFileStore(log)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	reportRepo := repos.NewReportRepo(tx, log)
	jobRepo := repos.NewJobRunRepo(tx, log)
	svc := services.NewReportService(tx, log, reportRepo, jobRepo, store)
	return svc, reportRepo, jobRepo, context.Background()
}

func TestUploadRejectsUnsupportedMime(t *testing.T) {
	svc, reportRepo, _, ctx := newReportService(t)
	_, err := svc.Upload(ctx, "notes.txt", "text/plain", []byte("hello"))
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	latest, err := reportRepo.GetLatest(ctx, nil)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if latest != nil {
		t.Fatalf("report row created for rejected upload: %+v", latest)
	}
}

func TestUploadRejectsOversizeFile(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "16")
	svc, _, _, ctx := newReportService(t)
	_, err := svc.Upload(ctx, "big.pdf", "application/pdf", make([]byte, 64))
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusBadRequest || ae.Code != "file_too_large" {
		t.Fatalf("expected file_too_large 400, got %v", err)
	}
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc, _, _, ctx := newReportService(t)
	_, err := svc.Upload(ctx, "empty.pdf", "application/pdf", nil)
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != "empty_file" {
		t.Fatalf("expected empty_file, got %v", err)
	}
}

func TestUploadCreatesReportAndJob(t *testing.T) {
	svc, reportRepo, jobRepo, ctx := newReportService(t)
	report, err := svc.Upload(ctx, "panel.pdf", "application/pdf", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if report.AnalysisComplete != domain.AnalysisPending {
		t.Fatalf("new report state = %d, want pending", report.AnalysisComplete)
	}

	stored, err := reportRepo.GetByID(ctx, nil, report.ID)
	if err != nil || stored == nil {
		t.Fatalf("report not persisted: %v", err)
	}
	job, err := jobRepo.GetLatestByEntity(ctx, nil, domain.JobTypeReportExtraction, report.ID)
	if err != nil {
		t.Fatalf("GetLatestByEntity: %v", err)
	}
	if job == nil || job.Status != domain.JobQueued {
		t.Fatalf("extraction job not enqueued: %+v", job)
	}
}

func TestStatusReflectsTriState(t *testing.T) {
	svc, reportRepo, _, ctx := newReportService(t)
	report, err := svc.Upload(ctx, "panel.pdf", "application/pdf", []byte("%PDF fake"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	st, err := svc.Status(ctx, report.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Status != "processing" {
		t.Fatalf("status = %q, want processing", st.Status)
	}

	if err := reportRepo.UpdateFields(ctx, nil, report.ID, map[string]interface{}{
		"analysis_complete": domain.AnalysisComplete,
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	st, err = svc.Status(ctx, report.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Status != "complete" {
		t.Fatalf("status = %q, want complete", st.Status)
	}
}
