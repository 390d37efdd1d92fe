package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/evelahealth/evela-backend/internal/http/response"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/services"
)

type TrackingHandler struct {
	log      *logger.Logger
	tracking services.TrackingService
}

func NewTrackingHandler(baseLog *logger.Logger, tracking services.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		log:      baseLog.With("handler", "TrackingHandler"),
		tracking: tracking,
	}
}

type periodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	FlowLevel string `json:"flow_level"`
	Symptoms  string `json:"symptoms"`
	Notes     string `json:"notes"`
}

func (h *TrackingHandler) LogPeriod(c *gin.Context) {
	var req periodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_start_date", err)
		return
	}
	input := services.PeriodInput{
		StartDate: start,
		FlowLevel: req.FlowLevel,
		Symptoms:  req.Symptoms,
		Notes:     req.Notes,
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_end_date", err)
			return
		}
		input.EndDate = &end
	}
	cycle, svcErr := h.tracking.LogPeriod(c.Request.Context(), input)
	if svcErr != nil {
		response.RespondServiceError(c, svcErr)
		return
	}
	response.RespondCreated(c, cycle)
}

func (h *TrackingHandler) ListPeriods(c *gin.Context) {
	cycles, err := h.tracking.ListPeriods(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"cycles": cycles})
}

func (h *TrackingHandler) DeletePeriod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_cycle_id", err)
		return
	}
	if svcErr := h.tracking.DeletePeriod(c.Request.Context(), id); svcErr != nil {
		response.RespondServiceError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

type waterRequest struct {
	AmountML int `json:"amount_ml"`
}

func (h *TrackingHandler) LogWater(c *gin.Context) {
	var req waterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	entry, total, svcErr := h.tracking.LogWater(c.Request.Context(), req.AmountML)
	if svcErr != nil {
		response.RespondServiceError(c, svcErr)
		return
	}
	response.RespondCreated(c, gin.H{"entry": entry, "today": total})
}

func (h *TrackingHandler) WaterToday(c *gin.Context) {
	total, err := h.tracking.WaterToday(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, total)
}

type stepsRequest struct {
	Steps int `json:"steps"`
}

func (h *TrackingHandler) LogSteps(c *gin.Context) {
	var req stepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	entry, total, svcErr := h.tracking.LogSteps(c.Request.Context(), req.Steps)
	if svcErr != nil {
		response.RespondServiceError(c, svcErr)
		return
	}
	response.RespondCreated(c, gin.H{"entry": entry, "today": total})
}

func (h *TrackingHandler) StepsToday(c *gin.Context) {
	total, err := h.tracking.StepsToday(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, total)
}
