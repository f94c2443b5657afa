package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postigiusti/bacheca/internal/app/models/dto"
	"github.com/postigiusti/bacheca/internal/app/services"
	"github.com/postigiusti/bacheca/internal/middleware"
)

// MessageController handles direct messages
type MessageController struct {
	messageService services.MessageService
	authService    services.AuthService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService, authService services.AuthService) *MessageController {
	return &MessageController{messageService: messageService, authService: authService}
}

// SendMessage handles POST /api/v1/messages
func (mc *MessageController) SendMessage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidBody, "Invalid request body")))
		return
	}

	sender, err := mc.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	message, err := mc.messageService.SendMessage(c.Request.Context(), sender, req.ToNickname, req.Content)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// GetInbox handles GET /api/v1/messages
func (mc *MessageController) GetInbox(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	messages, err := mc.messageService.GetInbox(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// GetUnreadCount handles GET /api/v1/messages/unread
func (mc *MessageController) GetUnreadCount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	count, err := mc.messageService.CountUnread(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"unread": count}))
}
