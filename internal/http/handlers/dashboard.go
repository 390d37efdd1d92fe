package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/evelahealth/evela-backend/internal/http/response"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/services"
)

type DashboardHandler struct {
	log       *logger.Logger
	dashboard services.DashboardService
}

func NewDashboardHandler(baseLog *logger.Logger, dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		log:       baseLog.With("handler", "DashboardHandler"),
		dashboard: dashboard,
	}
}

func (h *DashboardHandler) LatestRiskScore(c *gin.Context) {
	score, err := h.dashboard.LatestRiskScore(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, score)
}

func (h *DashboardHandler) RiskHistory(c *gin.Context) {
	scores, err := h.dashboard.RiskHistory(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"risk_scores": scores})
}

func (h *DashboardHandler) Tasks(c *gin.Context) {
	tasks, err := h.dashboard.Tasks(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tasks": tasks})
}

type updateTaskRequest struct {
	Completed *bool `json:"completed"`
}

func (h *DashboardHandler) UpdateTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_task_id", err)
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		response.RespondError(c, http.StatusBadRequest, "completed_required", err)
		return
	}
	task, svcErr := h.dashboard.SetTaskCompleted(c.Request.Context(), id, *req.Completed)
	if svcErr != nil {
		response.RespondServiceError(c, svcErr)
		return
	}
	response.RespondOK(c, task)
}

func (h *DashboardHandler) LatestParameters(c *gin.Context) {
	params, err := h.dashboard.LatestParameters(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"parameters": params})
}

func (h *DashboardHandler) ParametersByReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_report_id", err)
		return
	}
	params, svcErr := h.dashboard.ParametersByReport(c.Request.Context(), id)
	if svcErr != nil {
		response.RespondServiceError(c, svcErr)
		return
	}
	response.RespondOK(c, gin.H{"parameters": params})
}

func (h *DashboardHandler) AllParameters(c *gin.Context) {
	params, err := h.dashboard.AllParameters(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"parameters": params})
}

func (h *DashboardHandler) Insights(c *gin.Context) {
	insights, err := h.dashboard.Insights(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"insights": insights})
}
