package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/evelahealth/evela-backend/internal/http/response"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/services"
)

type HospitalHandler struct {
	log       *logger.Logger
	hospitals services.HospitalService
}

func NewHospitalHandler(baseLog *logger.Logger, hospitals services.HospitalService) *HospitalHandler {
	return &HospitalHandler{
		log:       baseLog.With("handler", "HospitalHandler"),
		hospitals: hospitals,
	}
}

func (h *HospitalHandler) List(c *gin.Context) {
	emergencyOnly, _ := strconv.ParseBool(c.Query("emergency"))
	out, err := h.hospitals.List(c.Request.Context(), emergencyOnly)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"hospitals": out})
}
