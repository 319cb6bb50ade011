package handler

import (
	"net/http"

	"digital_market/internal/middleware"
	"digital_market/internal/service"
	"digital_market/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService service.ChatService
	log         logger.Logger
}

func NewChatHandler(chatService service.ChatService, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		log:         log,
	}
}

type SendMessageRequest struct {
	SenderEmail      string `json:"sender_email"`
	ConversationWith string `json:"conversation_with"`
	Message          string `json:"message" binding:"required"`
	IsAdmin          bool   `json:"is_admin"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), service.SendMessageInput{
		SenderEmail:      req.SenderEmail,
		ConversationWith: req.ConversationWith,
		Message:          req.Message,
		IsAdmin:          req.IsAdmin,
	}, middleware.Actor(c))
	if err != nil {
		h.log.Warn("Chat message rejected", "error", err, "is_admin", req.IsAdmin)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, message)
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	messages, err := h.chatService.ListMessages(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// GetTranscript - переписка покупателя с администратором, ?email=<покупатель>.
func (h *ChatHandler) GetTranscript(c *gin.Context) {
	h.transcript(c, c.Query("email"))
}

func (h *ChatHandler) GetConversation(c *gin.Context) {
	h.transcript(c, c.Param("email"))
}

func (h *ChatHandler) transcript(c *gin.Context, viewer string) {
	messages, err := h.chatService.Transcript(c.Request.Context(), viewer)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) GetConversations(c *gin.Context) {
	conversations, err := h.chatService.Conversations(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, conversations)
}
