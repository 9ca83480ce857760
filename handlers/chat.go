package handlers

import (
	"net/http"

	"placemate/models"
	"placemate/services/chat"
	"placemate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversational recommendation entry point.
type ChatHandler struct {
	Service chat.ChatService
}

func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{Service: svc}
}

// HandleChatMessage processes one chat turn.
func (h *ChatHandler) HandleChatMessage(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid chat request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	resp, err := h.Service.HandleMessage(c.Request.Context(), req)
	if err != nil {
		// The service only errors on invalid caller input.
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	c.JSON(http.StatusOK, resp)
}
