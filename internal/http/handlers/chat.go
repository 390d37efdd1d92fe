package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evelahealth/evela-backend/internal/http/response"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/services"
)

type ChatHandler struct {
	log  *logger.Logger
	chat services.ChatService
}

func NewChatHandler(baseLog *logger.Logger, chat services.ChatService) *ChatHandler {
	return &ChatHandler{
		log:  baseLog.With("handler", "ChatHandler"),
		chat: chat,
	}
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

func (h *ChatHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	reply, err := h.chat.Send(c.Request.Context(), req.Message)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, reply)
}

func (h *ChatHandler) History(c *gin.Context) {
	messages, err := h.chat.History(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"messages": messages})
}
