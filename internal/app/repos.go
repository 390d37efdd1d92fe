package app

import (
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/repos"
)

type Repos struct {
	Report           repos.ReportRepo
	Parameter        repos.ParameterRepo
	Assessment       repos.AssessmentRepo
	RiskScore        repos.RiskScoreRepo
	DailyTask        repos.DailyTaskRepo
	Insight          repos.InsightRepo
	EmergencyContact repos.EmergencyContactRepo
	SosAlert         repos.SosAlertRepo
	ChatMessage      repos.ChatMessageRepo
	PeriodCycle      repos.PeriodCycleRepo
	WaterIntake      repos.WaterIntakeRepo
	Steps            repos.StepsRepo
	JobRun           repos.JobRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Report:           repos.NewReportRepo(db, log),
		Parameter:        repos.NewParameterRepo(db, log),
		Assessment:       repos.NewAssessmentRepo(db, log),
		RiskScore:        repos.NewRiskScoreRepo(db, log),
		DailyTask:        repos.NewDailyTaskRepo(db, log),
		Insight:          repos.NewInsightRepo(db, log),
		EmergencyContact: repos.NewEmergencyContactRepo(db, log),
		SosAlert:         repos.NewSosAlertRepo(db, log),
		ChatMessage:      repos.NewChatMessageRepo(db, log),
		PeriodCycle:      repos.NewPeriodCycleRepo(db, log),
		WaterIntake:      repos.NewWaterIntakeRepo(db, log),
		Steps:            repos.NewStepsRepo(db, log),
		JobRun:           repos.NewJobRunRepo(db, log),
	}
}
