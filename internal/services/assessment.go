package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/ai"
	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/apierr"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/repos"
)

// AssessmentService runs the questionnaire pipeline: gate on the latest
// report's analysis state, run the three model calls, then persist the
// assessment, risk score, tasks and insights together.
type AssessmentService interface {
	Submit(ctx context.Context, answers map[string]any) (*AssessmentResult, error)
	LatestAssessment(ctx context.Context) (*domain.Assessment, error)
	ListAssessments(ctx context.Context) ([]*domain.Assessment, error)
}

// AnalysisPendingError signals that the latest report is still being
// analyzed; callers translate it into a 202 carrying the report id.
type AnalysisPendingError struct {
	ReportID uuid.UUID
}

func (e *AnalysisPendingError) Error() string {
	return fmt.Sprintf("report %s is still being analyzed", e.ReportID)
}

type AssessmentResult struct {
	Assessment *domain.Assessment  `json:"assessment"`
	RiskScore  *domain.RiskScore   `json:"risk_score"`
	Tasks      []*domain.DailyTask `json:"daily_tasks"`
	Insights   []*domain.Insight   `json:"insights"`
}

type assessmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	adapter        ai.Adapter
	reportRepo     repos.ReportRepo
	assessmentRepo repos.AssessmentRepo
	riskScoreRepo  repos.RiskScoreRepo
	dailyTaskRepo  repos.DailyTaskRepo
	insightRepo    repos.InsightRepo
}

func NewAssessmentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	adapter ai.Adapter,
	reportRepo repos.ReportRepo,
	assessmentRepo repos.AssessmentRepo,
	riskScoreRepo repos.RiskScoreRepo,
	dailyTaskRepo repos.DailyTaskRepo,
	insightRepo repos.InsightRepo,
) AssessmentService {
	return &assessmentService{
		db:             db,
		log:            baseLog.With("service", "AssessmentService"),
		adapter:        adapter,
		reportRepo:     reportRepo,
		assessmentRepo: assessmentRepo,
		riskScoreRepo:  riskScoreRepo,
		dailyTaskRepo:  dailyTaskRepo,
		insightRepo:    insightRepo,
	}
}

func (s *assessmentService) Submit(ctx context.Context, answers map[string]any) (*AssessmentResult, error) {
	if len(answers) == 0 {
		return nil, apierr.Newf(http.StatusBadRequest, "answers_required", "assessment answers are required")
	}

	report, err := s.reportRepo.GetLatest(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "report_lookup_failed", err)
	}
	if report == nil {
		return nil, apierr.Newf(http.StatusNotFound, "no_report", "upload a medical report before taking the assessment")
	}
	switch report.AnalysisComplete {
	case domain.AnalysisPending:
		return nil, &AnalysisPendingError{ReportID: report.ID}
	case domain.AnalysisFailed:
		return nil, apierr.Newf(http.StatusUnprocessableEntity, "analysis_failed",
			"analysis of report %s failed; upload a new report", report.ID)
	}

	extracted, err := decodeExtraction(report.ExtractedData)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "extracted_data_corrupt", err)
	}

	// All three model calls run before anything is written. A failure at any
	// point leaves no partial assessment behind.
	risk, err := s.adapter.ScoreRisk(ctx, extracted, answers)
	if err != nil {
		s.log.Error("Risk scoring failed", "report_id", report.ID, "error", err)
		return nil, apierr.New(http.StatusBadGateway, "risk_scoring_failed", err)
	}
	taskItems, err := s.adapter.GenerateTasks(ctx, extracted, risk)
	if err != nil {
		s.log.Error("Task generation failed", "report_id", report.ID, "error", err)
		return nil, apierr.New(http.StatusBadGateway, "task_generation_failed", err)
	}
	insightItems, err := s.adapter.GenerateInsights(ctx, extracted, answers)
	if err != nil {
		s.log.Error("Insight generation failed", "report_id", report.ID, "error", err)
		return nil, apierr.New(http.StatusBadGateway, "insight_generation_failed", err)
	}

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "answers_invalid", err)
	}

	reportID := report.ID
	now := time.Now()
	assessment := &domain.Assessment{
		ID:          uuid.New(),
		ReportID:    &reportID,
		Answers:     rawAnswers,
		CompletedAt: now,
	}
	assessmentID := assessment.ID
	score := &domain.RiskScore{
		ID:             uuid.New(),
		ReportID:       &reportID,
		AssessmentID:   &assessmentID,
		Score:          risk.Score,
		RiskLevel:      risk.RiskLevel,
		Interpretation: risk.Interpretation,
		CalculatedAt:   now,
	}
	tasks := make([]*domain.DailyTask, 0, len(taskItems))
	for _, it := range taskItems {
		tasks = append(tasks, &domain.DailyTask{
			ID:          uuid.New(),
			ReportID:    &reportID,
			TaskType:    it.TaskType,
			Description: it.Description,
			Target:      it.Target,
			Completed:   0,
			CreatedAt:   now,
		})
	}
	insights := make([]*domain.Insight, 0, len(insightItems))
	for _, it := range insightItems {
		insights = append(insights, &domain.Insight{
			ID:        uuid.New(),
			ReportID:  &reportID,
			Category:  it.Category,
			Title:     it.Title,
			Content:   it.Content,
			Severity:  it.Severity,
			CreatedAt: now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.assessmentRepo.Create(ctx, tx, assessment); err != nil {
			return fmt.Errorf("create assessment: %w", err)
		}
		if _, err := s.riskScoreRepo.Create(ctx, tx, score); err != nil {
			return fmt.Errorf("create risk score: %w", err)
		}
		if _, err := s.dailyTaskRepo.Create(ctx, tx, tasks); err != nil {
			return fmt.Errorf("create daily tasks: %w", err)
		}
		if _, err := s.insightRepo.Create(ctx, tx, insights); err != nil {
			return fmt.Errorf("create insights: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("Assessment persist failed", "report_id", report.ID, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "assessment_persist_failed", err)
	}

	s.log.Info("Assessment completed",
		"assessment_id", assessment.ID,
		"report_id", report.ID,
		"score", score.Score,
		"risk_level", score.RiskLevel,
		"tasks", len(tasks),
		"insights", len(insights))
	return &AssessmentResult{
		Assessment: assessment,
		RiskScore:  score,
		Tasks:      tasks,
		Insights:   insights,
	}, nil
}

func (s *assessmentService) LatestAssessment(ctx context.Context) (*domain.Assessment, error) {
	out, err := s.assessmentRepo.GetLatest(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "assessment_lookup_failed", err)
	}
	return out, nil
}

func (s *assessmentService) ListAssessments(ctx context.Context) ([]*domain.Assessment, error) {
	out, err := s.assessmentRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "assessment_list_failed", err)
	}
	return out, nil
}

func decodeExtraction(raw []byte) (*ai.ExtractionResult, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("report has no extracted data")
	}
	var out ai.ExtractionResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode extracted data: %w", err)
	}
	return &out, nil
}
