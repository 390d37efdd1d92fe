package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/ai"
	"github.com/evelahealth/evela-backend/internal/clients/redis"
	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/envutil"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/repos"
	"github.com/evelahealth/evela-backend/internal/storage"
)

// ReportExtractionHandler turns an uploaded report into parameter rows and
// flips the report's tri-state analysis flag. The flag only ever moves from
// pending to a terminal state here.
type ReportExtractionHandler struct {
	log           *logger.Logger
	adapter       ai.Adapter
	fileStore     *storage.FileStore
	reportRepo    repos.ReportRepo
	parameterRepo repos.ParameterRepo
	statusBus     redis.StatusBus
	maxAttempts   int
}

// NewReportExtractionHandler accepts a nil statusBus; status events are then
// only observable through polling.
func NewReportExtractionHandler(
	baseLog *logger.Logger,
	adapter ai.Adapter,
	fileStore *storage.FileStore,
	reportRepo repos.ReportRepo,
	parameterRepo repos.ParameterRepo,
	statusBus redis.StatusBus,
) *ReportExtractionHandler {
	return &ReportExtractionHandler{
		log:           baseLog.With("handler", "ReportExtraction"),
		adapter:       adapter,
		fileStore:     fileStore,
		reportRepo:    reportRepo,
		parameterRepo: parameterRepo,
		statusBus:     statusBus,
		maxAttempts:   envutil.Int("JOB_MAX_ATTEMPTS", 3),
	}
}

func (h *ReportExtractionHandler) Run(jc *Context) {
	reportID, ok := jc.PayloadUUID("report_id")
	if !ok {
		jc.Fail("payload", fmt.Errorf("payload missing report_id"))
		return
	}

	report, err := h.reportRepo.GetByID(jc.Ctx, nil, reportID)
	if err != nil {
		jc.Fail("load_report", err)
		return
	}
	if report == nil {
		jc.Fail("load_report", fmt.Errorf("report %s not found", reportID))
		return
	}
	if report.AnalysisComplete != domain.AnalysisPending {
		// COMPLETE and FAILED are terminal for the report; a re-delivered
		// job must never move the flag again.
		jc.Succeed(map[string]any{"report_id": report.ID.String(), "skipped": true})
		return
	}

	data, err := h.fileStore.Read(report.FilePath)
	if err != nil {
		h.markFailed(jc, report, "read_file", err)
		return
	}
	jc.Heartbeat()

	extracted, err := h.adapter.ExtractParameters(jc.Ctx, data, report.FileName, report.MimeType)
	if err != nil {
		h.markFailed(jc, report, "extract", err)
		return
	}
	jc.Heartbeat()

	rawExtracted, err := json.Marshal(extracted)
	if err != nil {
		h.markFailed(jc, report, "encode", err)
		return
	}

	now := time.Now()
	params := make([]*domain.Parameter, 0, len(extracted.Parameters))
	for _, p := range extracted.Parameters {
		params = append(params, &domain.Parameter{
			ReportID:       report.ID,
			Name:           p.Name,
			Value:          p.Value,
			Unit:           p.Unit,
			ReferenceRange: p.ReferenceRange,
			Status:         p.Status,
			ExtractedAt:    now,
		})
	}

	err = jc.DB.WithContext(jc.Ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := h.parameterRepo.Create(jc.Ctx, tx, params); err != nil {
			return fmt.Errorf("create parameters: %w", err)
		}
		return h.reportRepo.UpdateFields(jc.Ctx, tx, report.ID, map[string]interface{}{
			"extracted_data":    datatypes.JSON(rawExtracted),
			"analysis_complete": domain.AnalysisComplete,
			"last_error":        "",
		})
	})
	if err != nil {
		h.markFailed(jc, report, "persist", err)
		return
	}

	h.publishStatus(jc, report.ID.String(), "complete")
	jc.Succeed(map[string]any{
		"report_id":  report.ID.String(),
		"parameters": len(params),
	})
}

// markFailed records the failure on the report. The flag only moves to FAILED
// once the attempt budget is spent; while retries remain the report stays
// PENDING so pollers keep seeing "processing", and a terminal state is never
// rewritten by a later attempt.
func (h *ReportExtractionHandler) markFailed(jc *Context, report *domain.Report, stage string, cause error) {
	terminal := jc.Job == nil || jc.Job.Attempts >= h.maxAttempts
	updates := map[string]interface{}{
		"last_error": fmt.Sprintf("%s: %v", stage, cause),
	}
	if terminal {
		updates["analysis_complete"] = domain.AnalysisFailed
	}
	if err := h.reportRepo.UpdateFields(jc.Ctx, nil, report.ID, updates); err != nil {
		h.log.Error("Report failure write failed", "report_id", report.ID, "error", err)
	}
	if terminal {
		h.publishStatus(jc, report.ID.String(), "failed")
	}
	jc.Fail(stage, cause)
}

func (h *ReportExtractionHandler) publishStatus(jc *Context, reportID, status string) {
	if h.statusBus == nil {
		return
	}
	evt := redis.StatusEvent{ReportID: reportID, Status: status, At: time.Now()}
	if err := h.statusBus.Publish(jc.Ctx, evt); err != nil {
		h.log.Warn("Status publish failed", "report_id", reportID, "error", err)
	}
}
