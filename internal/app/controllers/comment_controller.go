package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/postigiusti/bacheca/internal/app/models/dto"
	"github.com/postigiusti/bacheca/internal/app/services"
	"github.com/postigiusti/bacheca/internal/middleware"
)

// CommentController serves comments and post-author replies
type CommentController struct {
	commentService services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// GetComments handles GET /api/v1/posts/:id/comments
func (cc *CommentController) GetComments(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")))
		return
	}

	comments, err := cc.commentService.GetComments(c.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

// CreateComment handles POST /api/v1/posts/:id/comments
func (cc *CommentController) CreateComment(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post ID")))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidBody, "Invalid request body")))
		return
	}

	comment, err := cc.commentService.CreateComment(c.Request.Context(), postID, userID, req.Content)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// CreateReply handles POST /api/v1/comments/:id/reply
func (cc *CommentController) CreateReply(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid comment ID")))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidBody, "Invalid request body")))
		return
	}

	reply, err := cc.commentService.CreateReply(c.Request.Context(), commentID, userID, req.Content)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(reply))
}

// GetReplies handles GET /api/v1/comments/replies?commentIds=1,2,3
func (cc *CommentController) GetReplies(c *gin.Context) {
	raw := c.Query("commentIds")
	if raw == "" {
		c.JSON(http.StatusOK, dto.NewSuccessResponse([]interface{}{}))
		return
	}

	parts := strings.Split(raw, ",")
	commentIDs := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid comment ID list")))
			return
		}
		commentIDs = append(commentIDs, id)
	}

	replies, err := cc.commentService.GetReplies(c.Request.Context(), commentIDs)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(replies))
}
