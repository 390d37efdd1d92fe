package jobs_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/ai"
	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/jobs"
	"github.com/evelahealth/evela-backend/internal/repos"
	"github.com/evelahealth/evela-backend/internal/repos/testutil"
	"github.com/evelahealth/evela-backend/internal/storage"
)

type fakeExtractor struct {
	result     *ai.ExtractionResult
	extractErr error
	calls      int
}

func (f *fakeExtractor) ExtractParameters(ctx context.Context, fileBytes []byte, fileName, mimeType string) (*ai.ExtractionResult, error) {
	f.calls++
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return f.result, nil
}

func (f *fakeExtractor) ScoreRisk(ctx context.Context, extracted *ai.ExtractionResult, answers map[string]any) (*ai.RiskResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeExtractor) GenerateTasks(ctx context.Context, extracted *ai.ExtractionResult, risk *ai.RiskResult) ([]ai.TaskItem, error) {
	return nil, errors.New("not used")
}

func (f *fakeExtractor) GenerateInsights(ctx context.Context, extracted *ai.ExtractionResult, answers map[string]any) ([]ai.InsightItem, error) {
	return nil, errors.New("not used")
}

func (f *fakeExtractor) ChatReply(ctx context.Context, message string, history []ai.ChatTurn) (string, bool) {
	return "", true
}

type extractionFixture struct {
	tx         *gorm.DB
	fs         *storage.FileStore
	reports    repos.ReportRepo
	parameters repos.ParameterRepo
	jobRuns    repos.JobRunRepo
}

func newExtractionFixture(t *testing.T) *extractionFixture {
	t.Helper()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)

	t.Setenv("UPLOADS_DIR", t.TempDir())
	fs, err := storage.NewFileStore(log)
	if err != nil {
		t.Fatalf("file store: %v", err)
	}

	return &extractionFixture{
		tx:         tx,
		fs:         fs,
		reports:    repos.NewReportRepo(tx, log),
		parameters: repos.NewParameterRepo(tx, log),
		jobRuns:    repos.NewJobRunRepo(tx, log),
	}
}

// seedStoredReport writes a real file into the store and seeds a pending
// report pointing at it, with a running job run claimed for it.
func (fx *extractionFixture) seedStoredReport(t *testing.T, ctx context.Context) (*domain.Report, *domain.JobRun) {
	t.Helper()
	stored, err := fx.fs.Save("panel.pdf", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("save file: %v", err)
	}
	report := &domain.Report{
		ID:               uuid.New(),
		FileName:         "panel.pdf",
		FilePath:         stored,
		MimeType:         "application/pdf",
		SizeBytes:        13,
		AnalysisComplete: domain.AnalysisPending,
		UploadedAt:       time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := fx.tx.WithContext(ctx).Create(report).Error; err != nil {
		t.Fatalf("seed report: %v", err)
	}
	job := testutil.SeedJobRun(t, ctx, fx.tx, domain.JobTypeReportExtraction, report.ID, domain.JobRunning)
	return report, job
}

func (fx *extractionFixture) runHandler(t *testing.T, ctx context.Context, fa *fakeExtractor, job *domain.JobRun) {
	t.Helper()
	log := testutil.Logger(t)
	h := jobs.NewReportExtractionHandler(log, fa, fx.fs, fx.reports, fx.parameters, nil)
	jc := jobs.NewContext(ctx, fx.tx, log, job, fx.jobRuns)
	h.Run(jc)
}

func TestReportExtractionSuccess(t *testing.T) {
	fx := newExtractionFixture(t)
	ctx := context.Background()
	report, job := fx.seedStoredReport(t, ctx)

	fa := &fakeExtractor{result: &ai.ExtractionResult{
		ReportType: "Blood Panel",
		Summary:    "Thyroid within range",
		Parameters: []ai.ExtractedParameter{
			{Name: "TSH", Value: "2.1", Unit: "mIU/L", ReferenceRange: "0.4-4.0", Status: "Normal"},
			{Name: "Vitamin D", Value: "18", Unit: "ng/mL", ReferenceRange: "30-100", Status: "Low"},
		},
	}}
	fx.runHandler(t, ctx, fa, job)

	got, err := fx.reports.GetByID(ctx, nil, report.ID)
	if err != nil {
		t.Fatalf("reload report: %v", err)
	}
	if got.AnalysisComplete != domain.AnalysisComplete {
		t.Fatalf("analysis_complete = %d, want %d", got.AnalysisComplete, domain.AnalysisComplete)
	}
	if got.LastError != "" {
		t.Fatalf("last_error = %q, want empty", got.LastError)
	}
	if len(got.ExtractedData) == 0 {
		t.Fatal("extracted_data not persisted")
	}

	params, err := fx.parameters.GetByReportID(ctx, nil, report.ID)
	if err != nil {
		t.Fatalf("load parameters: %v", err)
	}
	if len(params) != 2 {
		t.Fatalf("got %d parameter rows, want 2", len(params))
	}

	run, err := fx.jobRuns.GetByID(ctx, nil, job.ID)
	if err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if run.Status != domain.JobSucceeded {
		t.Fatalf("job status = %q, want succeeded", run.Status)
	}
}

func TestReportExtractionFailureKeepsPendingWhileRetriesRemain(t *testing.T) {
	fx := newExtractionFixture(t)
	ctx := context.Background()
	t.Setenv("JOB_MAX_ATTEMPTS", "3")
	report, job := fx.seedStoredReport(t, ctx)
	job.Attempts = 1

	fa := &fakeExtractor{extractErr: errors.New("model returned garbage")}
	fx.runHandler(t, ctx, fa, job)

	got, err := fx.reports.GetByID(ctx, nil, report.ID)
	if err != nil {
		t.Fatalf("reload report: %v", err)
	}
	if got.AnalysisComplete != domain.AnalysisPending {
		t.Fatalf("analysis_complete = %d after a retryable failure, want %d", got.AnalysisComplete, domain.AnalysisPending)
	}
	if !strings.Contains(got.LastError, "extract") {
		t.Fatalf("last_error = %q, want extract stage recorded", got.LastError)
	}

	run, err := fx.jobRuns.GetByID(ctx, nil, job.ID)
	if err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if run.Status != domain.JobFailed {
		t.Fatalf("job status = %q, want failed", run.Status)
	}
}

func TestReportExtractionFinalFailureMarksReport(t *testing.T) {
	fx := newExtractionFixture(t)
	ctx := context.Background()
	t.Setenv("JOB_MAX_ATTEMPTS", "3")
	report, job := fx.seedStoredReport(t, ctx)
	job.Attempts = 3

	fa := &fakeExtractor{extractErr: errors.New("model returned garbage")}
	fx.runHandler(t, ctx, fa, job)

	got, err := fx.reports.GetByID(ctx, nil, report.ID)
	if err != nil {
		t.Fatalf("reload report: %v", err)
	}
	if got.AnalysisComplete != domain.AnalysisFailed {
		t.Fatalf("analysis_complete = %d, want %d", got.AnalysisComplete, domain.AnalysisFailed)
	}
	if !strings.Contains(got.LastError, "extract") {
		t.Fatalf("last_error = %q, want extract stage", got.LastError)
	}

	params, err := fx.parameters.GetByReportID(ctx, nil, report.ID)
	if err != nil {
		t.Fatalf("load parameters: %v", err)
	}
	if len(params) != 0 {
		t.Fatalf("got %d parameter rows after failure, want 0", len(params))
	}

	run, err := fx.jobRuns.GetByID(ctx, nil, job.ID)
	if err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if run.Status != domain.JobFailed {
		t.Fatalf("job status = %q, want failed", run.Status)
	}
	if !strings.Contains(run.Error, "garbage") {
		t.Fatalf("job error = %q, want cause preserved", run.Error)
	}
}

func TestReportExtractionTerminalFailedStaysFailed(t *testing.T) {
	fx := newExtractionFixture(t)
	ctx := context.Background()
	log := testutil.Logger(t)

	report := testutil.SeedReport(t, ctx, fx.tx, domain.AnalysisFailed)
	job := testutil.SeedJobRun(t, ctx, fx.tx, domain.JobTypeReportExtraction, report.ID, domain.JobRunning)

	// An extractor that would succeed must not get the chance to rewrite
	// a FAILED report to COMPLETE.
	fa := &fakeExtractor{result: &ai.ExtractionResult{
		ReportType: "Blood Panel",
		Summary:    "fine",
		Parameters: []ai.ExtractedParameter{{Name: "TSH", Value: "2.1"}},
	}}
	h := jobs.NewReportExtractionHandler(log, fa, fx.fs, fx.reports, fx.parameters, nil)
	jc := jobs.NewContext(ctx, fx.tx, log, job, fx.jobRuns)
	h.Run(jc)

	if fa.calls != 0 {
		t.Fatalf("extractor called %d times for a failed report", fa.calls)
	}
	got, err := fx.reports.GetByID(ctx, nil, report.ID)
	if err != nil {
		t.Fatalf("reload report: %v", err)
	}
	if got.AnalysisComplete != domain.AnalysisFailed {
		t.Fatalf("analysis_complete = %d, want failed state preserved", got.AnalysisComplete)
	}
}

func TestReportExtractionSkipsAlreadyComplete(t *testing.T) {
	fx := newExtractionFixture(t)
	ctx := context.Background()

	report := testutil.SeedReport(t, ctx, fx.tx, domain.AnalysisComplete)
	job := testutil.SeedJobRun(t, ctx, fx.tx, domain.JobTypeReportExtraction, report.ID, domain.JobRunning)

	fa := &fakeExtractor{extractErr: errors.New("should never run")}
	fx.runHandler(t, ctx, fa, job)

	if fa.calls != 0 {
		t.Fatalf("extractor called %d times for a completed report", fa.calls)
	}
	run, err := fx.jobRuns.GetByID(ctx, nil, job.ID)
	if err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if run.Status != domain.JobSucceeded {
		t.Fatalf("job status = %q, want succeeded", run.Status)
	}
}

func TestReportExtractionMissingPayload(t *testing.T) {
	fx := newExtractionFixture(t)
	ctx := context.Background()

	job := &domain.JobRun{
		ID:      uuid.New(),
		JobType: domain.JobTypeReportExtraction,
		Status:  domain.JobRunning,
	}
	if err := fx.tx.WithContext(ctx).Create(job).Error; err != nil {
		t.Fatalf("seed job run: %v", err)
	}

	fx.runHandler(t, ctx, &fakeExtractor{}, job)

	run, err := fx.jobRuns.GetByID(ctx, nil, job.ID)
	if err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if run.Status != domain.JobFailed {
		t.Fatalf("job status = %q, want failed", run.Status)
	}
	if !strings.Contains(run.Error, "report_id") {
		t.Fatalf("job error = %q, want missing report_id", run.Error)
	}
}
