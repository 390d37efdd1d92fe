package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/evelahealth/evela-backend/internal/http/response"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/services"
)

type SosHandler struct {
	log *logger.Logger
	sos services.SosService
}

func NewSosHandler(baseLog *logger.Logger, sos services.SosService) *SosHandler {
	return &SosHandler{
		log: baseLog.With("handler", "SosHandler"),
		sos: sos,
	}
}

type contactRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

func (h *SosHandler) CreateContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	contact, err := h.sos.CreateContact(c.Request.Context(), req.Name, req.Phone, req.Relationship)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, contact)
}

func (h *SosHandler) ListContacts(c *gin.Context) {
	contacts, err := h.sos.ListContacts(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contacts": contacts})
}

func (h *SosHandler) UpdateContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_contact_id", err)
		return
	}
	var req services.ContactUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	contact, svcErr := h.sos.UpdateContact(c.Request.Context(), id, req)
	if svcErr != nil {
		response.RespondServiceError(c, svcErr)
		return
	}
	response.RespondOK(c, contact)
}

func (h *SosHandler) DeleteContact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_contact_id", err)
		return
	}
	if svcErr := h.sos.DeleteContact(c.Request.Context(), id); svcErr != nil {
		response.RespondServiceError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

type triggerRequest struct {
	Message   string `json:"message"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

func (h *SosHandler) Trigger(c *gin.Context) {
	var req triggerRequest
	// Body is optional; an empty POST still triggers an alert.
	_ = c.ShouldBindJSON(&req)
	alert, err := h.sos.Trigger(c.Request.Context(), req.Message, req.Latitude, req.Longitude)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, alert)
}

func (h *SosHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_alert_id", err)
		return
	}
	alert, svcErr := h.sos.Resolve(c.Request.Context(), id)
	if svcErr != nil {
		response.RespondServiceError(c, svcErr)
		return
	}
	response.RespondOK(c, alert)
}

func (h *SosHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.sos.ListAlerts(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"alerts": alerts})
}
