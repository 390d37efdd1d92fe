package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/apierr"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/repos"
)

// DashboardService is read-mostly: it surfaces whatever the extraction job
// and the assessment pipeline have produced so far.
type DashboardService interface {
	LatestRiskScore(ctx context.Context) (*domain.RiskScore, error)
	RiskHistory(ctx context.Context) ([]*domain.RiskScore, error)
	Tasks(ctx context.Context) ([]*domain.DailyTask, error)
	SetTaskCompleted(ctx context.Context, id uuid.UUID, completed bool) (*domain.DailyTask, error)
	LatestParameters(ctx context.Context) ([]*domain.Parameter, error)
	ParametersByReport(ctx context.Context, reportID uuid.UUID) ([]*domain.Parameter, error)
	AllParameters(ctx context.Context) ([]*domain.Parameter, error)
	Insights(ctx context.Context) ([]*domain.Insight, error)
}

type dashboardService struct {
	db            *gorm.DB
	log           *logger.Logger
	reportRepo    repos.ReportRepo
	riskScoreRepo repos.RiskScoreRepo
	dailyTaskRepo repos.DailyTaskRepo
	parameterRepo repos.ParameterRepo
	insightRepo   repos.InsightRepo
}

func NewDashboardService(
	db *gorm.DB,
	baseLog *logger.Logger,
	reportRepo repos.ReportRepo,
	riskScoreRepo repos.RiskScoreRepo,
	dailyTaskRepo repos.DailyTaskRepo,
	parameterRepo repos.ParameterRepo,
	insightRepo repos.InsightRepo,
) DashboardService {
	return &dashboardService{
		db:            db,
		log:           baseLog.With("service", "DashboardService"),
		reportRepo:    reportRepo,
		riskScoreRepo: riskScoreRepo,
		dailyTaskRepo: dailyTaskRepo,
		parameterRepo: parameterRepo,
		insightRepo:   insightRepo,
	}
}

func (s *dashboardService) LatestRiskScore(ctx context.Context) (*domain.RiskScore, error) {
	score, err := s.riskScoreRepo.GetLatest(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "risk_score_lookup_failed", err)
	}
	if score == nil {
		return nil, apierr.Newf(http.StatusNotFound, "no_risk_score", "no assessment has been completed yet")
	}
	return score, nil
}

func (s *dashboardService) RiskHistory(ctx context.Context) ([]*domain.RiskScore, error) {
	out, err := s.riskScoreRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "risk_score_list_failed", err)
	}
	return out, nil
}

func (s *dashboardService) Tasks(ctx context.Context) ([]*domain.DailyTask, error) {
	out, err := s.dailyTaskRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "task_list_failed", err)
	}
	return out, nil
}

func (s *dashboardService) SetTaskCompleted(ctx context.Context, id uuid.UUID, completed bool) (*domain.DailyTask, error) {
	task, err := s.dailyTaskRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "task_lookup_failed", err)
	}
	if task == nil {
		return nil, apierr.Newf(http.StatusNotFound, "task_not_found", "task %s not found", id)
	}
	flag := 0
	if completed {
		flag = 1
	}
	if err := s.dailyTaskRepo.SetCompleted(ctx, nil, id, flag); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "task_update_failed", err)
	}
	task.Completed = flag
	s.log.Info("Task completion updated", "task_id", id, "completed", flag)
	return task, nil
}

// LatestParameters returns the extracted values for the most recent report,
// or an empty list when nothing has been analyzed yet.
func (s *dashboardService) LatestParameters(ctx context.Context) ([]*domain.Parameter, error) {
	report, err := s.reportRepo.GetLatest(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "report_lookup_failed", err)
	}
	if report == nil {
		return []*domain.Parameter{}, nil
	}
	out, err := s.parameterRepo.GetByReportID(ctx, nil, report.ID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "parameter_list_failed", err)
	}
	return out, nil
}

func (s *dashboardService) ParametersByReport(ctx context.Context, reportID uuid.UUID) ([]*domain.Parameter, error) {
	report, err := s.reportRepo.GetByID(ctx, nil, reportID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "report_lookup_failed", err)
	}
	if report == nil {
		return nil, apierr.Newf(http.StatusNotFound, "report_not_found", "report %s not found", reportID)
	}
	out, err := s.parameterRepo.GetByReportID(ctx, nil, reportID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "parameter_list_failed", err)
	}
	return out, nil
}

func (s *dashboardService) AllParameters(ctx context.Context) ([]*domain.Parameter, error) {
	out, err := s.parameterRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "parameter_list_failed", err)
	}
	return out, nil
}

func (s *dashboardService) Insights(ctx context.Context) ([]*domain.Insight, error) {
	out, err := s.insightRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "insight_list_failed", err)
	}
	return out, nil
}
