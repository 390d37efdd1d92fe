package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/http/handlers"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/services"
)

type fakeReportService struct {
	report *domain.Report
	err    error
}

func (f *fakeReportService) Upload(ctx context.Context, fileName, mimeType string, data []byte) (*domain.Report, error) {
	return f.report, f.err
}

func (f *fakeReportService) Status(ctx context.Context, id uuid.UUID) (*services.ReportStatus, error) {
	return nil, f.err
}

func (f *fakeReportService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	return f.report, f.err
}

func (f *fakeReportService) Latest(ctx context.Context) (*domain.Report, error) {
	return f.report, f.err
}

func (f *fakeReportService) List(ctx context.Context) ([]*domain.Report, error) {
	return nil, f.err
}

func uploadRequest(t *testing.T, fileName string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/reports/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadReturnsCreatedReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	uploaded := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	svc := &fakeReportService{report: &domain.Report{
		ID:               uuid.New(),
		FileName:         "panel.pdf",
		MimeType:         "application/pdf",
		SizeBytes:        2048,
		AnalysisComplete: domain.AnalysisPending,
		UploadedAt:       uploaded,
	}}
	h := handlers.NewReportHandler(log, svc)

	r := gin.New()
	r.POST("/api/reports/upload", h.Upload)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "panel.pdf", []byte("%PDF-1.4")))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var body struct {
		Report domain.Report `json:"report"`
		Status string        `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Report.FileName != "panel.pdf" {
		t.Fatalf("report.file_name = %q, want panel.pdf", body.Report.FileName)
	}
	if !body.Report.UploadedAt.Equal(uploaded) {
		t.Fatalf("report.uploaded_at = %v, want %v", body.Report.UploadedAt, uploaded)
	}
	if body.Status != "processing" {
		t.Fatalf("status = %q, want processing", body.Status)
	}
}
