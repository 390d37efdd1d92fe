package app

import (
	httpH "github.com/evelahealth/evela-backend/internal/http/handlers"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Report     *httpH.ReportHandler
	Assessment *httpH.AssessmentHandler
	Dashboard  *httpH.DashboardHandler
	Chat       *httpH.ChatHandler
	Sos        *httpH.SosHandler
	Hospital   *httpH.HospitalHandler
	Tracking   *httpH.TrackingHandler
}

func wireHandlers(log *logger.Logger, svc Services) Handlers {
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Report:     httpH.NewReportHandler(log, svc.Report),
		Assessment: httpH.NewAssessmentHandler(log, svc.Assessment),
		Dashboard:  httpH.NewDashboardHandler(log, svc.Dashboard),
		Chat:       httpH.NewChatHandler(log, svc.Chat),
		Sos:        httpH.NewSosHandler(log, svc.Sos),
		Hospital:   httpH.NewHospitalHandler(log, svc.Hospitals),
		Tracking:   httpH.NewTrackingHandler(log, svc.Tracking),
	}
}
