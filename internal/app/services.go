package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/ai"
	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/jobs"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/services"
	"github.com/evelahealth/evela-backend/internal/storage"
)

type Services struct {
	Adapter    ai.Adapter
	FileStore  *storage.FileStore
	Report     services.ReportService
	Assessment services.AssessmentService
	Dashboard  services.DashboardService
	Chat       services.ChatService
	Sos        services.SosService
	Tracking   services.TrackingService
	Hospitals  services.HospitalService
	JobWorker  *jobs.Worker
}

func wireServices(db *gorm.DB, log *logger.Logger, clients Clients, reposet Repos) (Services, error) {
	var out Services

	fileStore, err := storage.NewFileStore(log)
	if err != nil {
		return out, fmt.Errorf("init file store: %w", err)
	}
	out.FileStore = fileStore

	out.Adapter = ai.NewAdapter(log, clients.OpenAI)
	out.Report = services.NewReportService(db, log, reposet.Report, reposet.JobRun, fileStore)
	out.Assessment = services.NewAssessmentService(
		db, log, out.Adapter,
		reposet.Report, reposet.Assessment, reposet.RiskScore, reposet.DailyTask, reposet.Insight,
	)
	out.Dashboard = services.NewDashboardService(
		db, log,
		reposet.Report, reposet.RiskScore, reposet.DailyTask, reposet.Parameter, reposet.Insight,
	)
	out.Chat = services.NewChatService(db, log, out.Adapter, reposet.ChatMessage)
	out.Sos = services.NewSosService(db, log, clients.Twilio, reposet.EmergencyContact, reposet.SosAlert)
	out.Tracking = services.NewTrackingService(db, log, reposet.PeriodCycle, reposet.WaterIntake, reposet.Steps)
	out.Hospitals = services.NewHospitalService(log)

	registry := jobs.NewRegistry()
	registry.Register(
		domain.JobTypeReportExtraction,
		jobs.NewReportExtractionHandler(log, out.Adapter, fileStore, reposet.Report, reposet.Parameter, clients.StatusBus),
	)
	out.JobWorker = jobs.NewWorker(db, log, reposet.JobRun, registry)

	return out, nil
}
