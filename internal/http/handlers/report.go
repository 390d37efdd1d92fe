package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/evelahealth/evela-backend/internal/http/response"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/services"
)

type ReportHandler struct {
	log     *logger.Logger
	reports services.ReportService
}

func NewReportHandler(baseLog *logger.Logger, reports services.ReportService) *ReportHandler {
	return &ReportHandler{
		log:     baseLog.With("handler", "ReportHandler"),
		reports: reports,
	}
}

func (h *ReportHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "file_required", err)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "file_unreadable", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "file_unreadable", err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = c.PostForm("mime_type")
	}

	report, svcErr := h.reports.Upload(c.Request.Context(), fileHeader.Filename, strings.TrimSpace(mimeType), data)
	if svcErr != nil {
		response.RespondServiceError(c, svcErr)
		return
	}
	response.RespondCreated(c, gin.H{
		"report": report,
		"status": report.StatusLabel(),
	})
}

func (h *ReportHandler) Status(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_report_id", err)
		return
	}
	st, svcErr := h.reports.Status(c.Request.Context(), id)
	if svcErr != nil {
		response.RespondServiceError(c, svcErr)
		return
	}
	response.RespondOK(c, st)
}

func (h *ReportHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_report_id", err)
		return
	}
	report, svcErr := h.reports.GetByID(c.Request.Context(), id)
	if svcErr != nil {
		response.RespondServiceError(c, svcErr)
		return
	}
	response.RespondOK(c, report)
}

func (h *ReportHandler) Latest(c *gin.Context) {
	report, err := h.reports.Latest(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if report == nil {
		response.RespondError(c, http.StatusNotFound, "no_report", nil)
		return
	}
	response.RespondOK(c, report)
}

func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reports": reports})
}
