package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/postigiusti/bacheca/internal/app/models/dto"
	"github.com/postigiusti/bacheca/internal/app/services"
	"github.com/postigiusti/bacheca/internal/middleware"
)

// AdminController serves the member management side of the admin panel
type AdminController struct {
	userService   services.UserService
	inviteService services.InviteService
}

// NewAdminController creates a new AdminController
func NewAdminController(userService services.UserService, inviteService services.InviteService) *AdminController {
	return &AdminController{userService: userService, inviteService: inviteService}
}

// ListProfiles handles GET /api/v1/admin/profiles
func (ac *AdminController) ListProfiles(c *gin.Context) {
	users, err := ac.userService.ListProfiles(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	profiles := make([]dto.ProfileResponse, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, dto.NewProfileResponse(user))
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(profiles))
}

// ApproveProfile handles POST /api/v1/admin/profiles/:id/approve
func (ac *AdminController) ApproveProfile(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile ID")))
		return
	}

	if err := ac.userService.ApproveProfile(c.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"approved": true}))
}

// SetProfileActive handles PATCH /api/v1/admin/profiles/:id/active
func (ac *AdminController) SetProfileActive(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile ID")))
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidBody, "Invalid request body")))
		return
	}

	if err := ac.userService.SetProfileActive(c.Request.Context(), userID, *req.Active); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"active": *req.Active}))
}

// ApproveInvite handles POST /api/v1/admin/invites/:id/approve
func (ac *AdminController) ApproveInvite(c *gin.Context) {
	inviteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid invite ID")))
		return
	}

	if err := ac.inviteService.Approve(c.Request.Context(), inviteID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"approved": true}))
}

// ListInvites handles GET /api/v1/admin/invites
func (ac *AdminController) ListInvites(c *gin.Context) {
	invites, err := ac.inviteService.ListAll(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(invites))
}
