package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/apierr"
	"github.com/evelahealth/evela-backend/internal/platform/envutil"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/repos"
	"github.com/evelahealth/evela-backend/internal/storage"
)

// ReportService owns the upload pipeline up to the point where the background
// worker takes over: validate, store the file, create the report row and its
// extraction job in one transaction.
type ReportService interface {
	Upload(ctx context.Context, fileName, mimeType string, data []byte) (*domain.Report, error)
	Status(ctx context.Context, id uuid.UUID) (*ReportStatus, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	Latest(ctx context.Context) (*domain.Report, error)
	List(ctx context.Context) ([]*domain.Report, error)
}

type ReportStatus struct {
	ReportID  uuid.UUID `json:"report_id"`
	Status    string    `json:"status"`
	FileName  string    `json:"file_name"`
	LastError string    `json:"last_error,omitempty"`
	Attempts  int       `json:"attempts"`
	UpdatedAt time.Time `json:"updated_at"`
}

var allowedUploadMimes = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpeg",
	"image/jpg":       "jpg",
	"image/png":       "png",
}

type reportService struct {
	db           *gorm.DB
	log          *logger.Logger
	reportRepo   repos.ReportRepo
	jobRunRepo   repos.JobRunRepo
	fileStore    *storage.FileStore
	maxSizeBytes int64
}

func NewReportService(
	db *gorm.DB,
	baseLog *logger.Logger,
	reportRepo repos.ReportRepo,
	jobRunRepo repos.JobRunRepo,
	fileStore *storage.FileStore,
) ReportService {
	return &reportService{
		db:           db,
		log:          baseLog.With("service", "ReportService"),
		reportRepo:   reportRepo,
		jobRunRepo:   jobRunRepo,
		fileStore:    fileStore,
		maxSizeBytes: envutil.Int64("MAX_UPLOAD_BYTES", 10*1024*1024),
	}
}

func (s *reportService) Upload(ctx context.Context, fileName, mimeType string, data []byte) (*domain.Report, error) {
	mime := strings.ToLower(strings.TrimSpace(mimeType))
	if _, ok := allowedUploadMimes[mime]; !ok {
		return nil, apierr.Newf(http.StatusBadRequest, "unsupported_file_type",
			"unsupported file type %q: accepted types are pdf, jpeg, jpg, png", mimeType)
	}
	if len(data) == 0 {
		return nil, apierr.Newf(http.StatusBadRequest, "empty_file", "uploaded file is empty")
	}
	if int64(len(data)) > s.maxSizeBytes {
		return nil, apierr.Newf(http.StatusBadRequest, "file_too_large",
			"file is %d bytes, limit is %d", len(data), s.maxSizeBytes)
	}

	relPath, err := s.fileStore.Save(fileName, data)
	if err != nil {
		s.log.Error("Upload store failed", "file_name", fileName, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "storage_failed", err)
	}

	report := &domain.Report{
		ID:               uuid.New(),
		FileName:         fileName,
		FilePath:         relPath,
		MimeType:         mime,
		SizeBytes:        int64(len(data)),
		AnalysisComplete: domain.AnalysisPending,
		UploadedAt:       time.Now(),
		UpdatedAt:        time.Now(),
	}

	// Report row and its extraction job commit together, so a crash between
	// the two can never leave a report stuck in processing with no job.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.reportRepo.Create(ctx, tx, report); err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		entityID := report.ID
		job := &domain.JobRun{
			ID:       uuid.New(),
			JobType:  domain.JobTypeReportExtraction,
			EntityID: &entityID,
			Status:   domain.JobQueued,
			Payload:  datatypes.JSON([]byte(fmt.Sprintf(`{"report_id":%q}`, report.ID))),
		}
		if _, err := s.jobRunRepo.Create(ctx, tx, []*domain.JobRun{job}); err != nil {
			return fmt.Errorf("enqueue extraction job: %w", err)
		}
		return nil
	})
	if err != nil {
		// Best effort; the orphaned file is harmless but pointless to keep.
		_ = s.fileStore.Remove(relPath)
		s.log.Error("Upload transaction failed", "file_name", fileName, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "upload_failed", err)
	}

	s.log.Info("Report uploaded", "report_id", report.ID, "mime_type", mime, "size_bytes", report.SizeBytes)
	return report, nil
}

func (s *reportService) Status(ctx context.Context, id uuid.UUID) (*ReportStatus, error) {
	report, err := s.reportRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "report_lookup_failed", err)
	}
	if report == nil {
		return nil, apierr.Newf(http.StatusNotFound, "report_not_found", "report %s not found", id)
	}
	st := &ReportStatus{
		ReportID:  report.ID,
		Status:    report.StatusLabel(),
		FileName:  report.FileName,
		LastError: report.LastError,
		UpdatedAt: report.UpdatedAt,
	}
	job, err := s.jobRunRepo.GetLatestByEntity(ctx, nil, domain.JobTypeReportExtraction, id)
	if err == nil && job != nil {
		st.Attempts = job.Attempts
	}
	return st, nil
}

func (s *reportService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "report_lookup_failed", err)
	}
	if report == nil {
		return nil, apierr.Newf(http.StatusNotFound, "report_not_found", "report %s not found", id)
	}
	return report, nil
}

func (s *reportService) Latest(ctx context.Context) (*domain.Report, error) {
	report, err := s.reportRepo.GetLatest(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "report_lookup_failed", err)
	}
	return report, nil
}

func (s *reportService) List(ctx context.Context) ([]*domain.Report, error) {
	out, err := s.reportRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "report_list_failed", err)
	}
	return out, nil
}
