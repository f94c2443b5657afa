package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/app/models/dto"
	"github.com/postigiusti/bacheca/internal/app/services"
	"github.com/postigiusti/bacheca/internal/middleware"
)

// InviteController handles invite issuing and verification
type InviteController struct {
	inviteService services.InviteService
	authService   services.AuthService
}

// NewInviteController creates a new InviteController
func NewInviteController(inviteService services.InviteService, authService services.AuthService) *InviteController {
	return &InviteController{inviteService: inviteService, authService: authService}
}

// CreateInvite handles POST /api/v1/invites
func (ic *InviteController) CreateInvite(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	// An empty body issues an unbound invite shared as a bare link.
	var req dto.CreateInviteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeInvalidBody, "Invalid request body")))
			return
		}
	}

	inviter, err := ic.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invite, err := ic.inviteService.CreateInvite(c.Request.Context(), inviter, req.Email)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(inviteResponse(invite)))
}

// GetMyInvites handles GET /api/v1/invites
func (ic *InviteController) GetMyInvites(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	invites, err := ic.inviteService.ListMine(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.InviteResponse, 0, len(invites))
	for i := range invites {
		responses = append(responses, inviteResponse(&invites[i]))
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// GetQuota handles GET /api/v1/invites/quota
func (ic *InviteController) GetQuota(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	limit, pending, err := ic.inviteService.GetQuota(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.InviteQuotaResponse{
		Limit:     limit,
		Pending:   pending,
		Remaining: limit - pending,
	}))
}

// VerifyToken handles GET /api/v1/invites/verify/:token (public: the
// registration page checks a link before showing the form)
func (ic *InviteController) VerifyToken(c *gin.Context) {
	invite, err := ic.inviteService.VerifyToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"valid": true,
		"email": invite.Email,
	}))
}

func inviteResponse(invite *models.Invite) dto.InviteResponse {
	return dto.InviteResponse{
		ID:        invite.ID,
		Token:     invite.Token,
		Email:     invite.Email,
		Approved:  invite.Approved,
		Used:      invite.Used,
		CreatedAt: invite.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
