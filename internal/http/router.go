package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/evelahealth/evela-backend/internal/http/handlers"
	httpMW "github.com/evelahealth/evela-backend/internal/http/middleware"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	ReportHandler     *httpH.ReportHandler
	AssessmentHandler *httpH.AssessmentHandler
	DashboardHandler  *httpH.DashboardHandler
	ChatHandler       *httpH.ChatHandler
	SosHandler        *httpH.SosHandler
	HospitalHandler   *httpH.HospitalHandler
	TrackingHandler   *httpH.TrackingHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLog(cfg.Log))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Reports
		if cfg.ReportHandler != nil {
			api.POST("/reports/upload", cfg.ReportHandler.Upload)
			api.GET("/reports", cfg.ReportHandler.List)
			api.GET("/reports/latest", cfg.ReportHandler.Latest)
			api.GET("/reports/:id", cfg.ReportHandler.Get)
			api.GET("/reports/:id/status", cfg.ReportHandler.Status)
		}

		// Assessment
		if cfg.AssessmentHandler != nil {
			api.POST("/assessments", cfg.AssessmentHandler.Submit)
			api.GET("/assessments", cfg.AssessmentHandler.List)
			api.GET("/assessments/latest", cfg.AssessmentHandler.Latest)
		}

		// Dashboard
		if cfg.DashboardHandler != nil {
			api.GET("/risk-score", cfg.DashboardHandler.LatestRiskScore)
			api.GET("/risk-score/history", cfg.DashboardHandler.RiskHistory)
			api.GET("/tasks", cfg.DashboardHandler.Tasks)
			api.PATCH("/tasks/:id", cfg.DashboardHandler.UpdateTask)
			api.GET("/parameters", cfg.DashboardHandler.LatestParameters)
			api.GET("/parameters/all", cfg.DashboardHandler.AllParameters)
			api.GET("/reports/:id/parameters", cfg.DashboardHandler.ParametersByReport)
			api.GET("/insights", cfg.DashboardHandler.Insights)
		}

		// Chat
		if cfg.ChatHandler != nil {
			api.POST("/chat", cfg.ChatHandler.Send)
			api.GET("/chat/history", cfg.ChatHandler.History)
		}

		// SOS
		if cfg.SosHandler != nil {
			api.POST("/sos/contacts", cfg.SosHandler.CreateContact)
			api.GET("/sos/contacts", cfg.SosHandler.ListContacts)
			api.PUT("/sos/contacts/:id", cfg.SosHandler.UpdateContact)
			api.DELETE("/sos/contacts/:id", cfg.SosHandler.DeleteContact)
			api.POST("/sos/trigger", cfg.SosHandler.Trigger)
			api.POST("/sos/alerts/:id/resolve", cfg.SosHandler.Resolve)
			api.GET("/sos/alerts", cfg.SosHandler.ListAlerts)
		}

		// Hospitals
		if cfg.HospitalHandler != nil {
			api.GET("/hospitals", cfg.HospitalHandler.List)
		}

		// Tracking
		if cfg.TrackingHandler != nil {
			api.POST("/tracking/period", cfg.TrackingHandler.LogPeriod)
			api.GET("/tracking/period", cfg.TrackingHandler.ListPeriods)
			api.DELETE("/tracking/period/:id", cfg.TrackingHandler.DeletePeriod)
			api.POST("/tracking/water", cfg.TrackingHandler.LogWater)
			api.GET("/tracking/water/today", cfg.TrackingHandler.WaterToday)
			api.POST("/tracking/steps", cfg.TrackingHandler.LogSteps)
			api.GET("/tracking/steps/today", cfg.TrackingHandler.StepsToday)
		}
	}

	return r
}
