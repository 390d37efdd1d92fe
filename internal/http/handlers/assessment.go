package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evelahealth/evela-backend/internal/http/response"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/services"
)

type AssessmentHandler struct {
	log         *logger.Logger
	assessments services.AssessmentService
}

func NewAssessmentHandler(baseLog *logger.Logger, assessments services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		log:         baseLog.With("handler", "AssessmentHandler"),
		assessments: assessments,
	}
}

type submitAssessmentRequest struct {
	Answers map[string]any `json:"answers"`
}

func (h *AssessmentHandler) Submit(c *gin.Context) {
	var req submitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.assessments.Submit(c.Request.Context(), req.Answers)
	if err != nil {
		var pending *services.AnalysisPendingError
		if errors.As(err, &pending) {
			c.JSON(http.StatusAccepted, gin.H{
				"status":    "processing",
				"report_id": pending.ReportID,
			})
			return
		}
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, result)
}

func (h *AssessmentHandler) Latest(c *gin.Context) {
	assessment, err := h.assessments.LatestAssessment(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if assessment == nil {
		response.RespondError(c, http.StatusNotFound, "no_assessment", nil)
		return
	}
	response.RespondOK(c, assessment)
}

func (h *AssessmentHandler) List(c *gin.Context) {
	assessments, err := h.assessments.ListAssessments(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"assessments": assessments})
}
