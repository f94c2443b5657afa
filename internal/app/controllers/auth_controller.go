package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/app/models/dto"
	"github.com/postigiusti/bacheca/internal/app/services"
	"github.com/postigiusti/bacheca/internal/middleware"
	"github.com/postigiusti/bacheca/internal/pkg/auth"
)

// AuthController handles registration, login, and token endpoints
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles POST /api/v1/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidBody, "Invalid request body")))
		return
	}

	user, pair, err := ac.authService.Register(c.Request.Context(), req.InviteToken, req.Email, req.Password, req.Nickname)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(authResponse(user, pair)))
}

// Login handles POST /api/v1/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidBody, "Invalid request body")))
		return
	}

	user, pair, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(authResponse(user, pair)))
}

// RefreshToken handles POST /api/v1/auth/refresh
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidBody, "Invalid request body")))
		return
	}

	user, pair, err := ac.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(authResponse(user, pair)))
}

// Logout handles POST /api/v1/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	if err := ac.authService.Logout(c.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"loggedOut": true}))
}

// GetMe handles GET /api/v1/me
func (ac *AuthController) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	user, err := ac.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponse(user)))
}

func authResponse(user *models.User, pair *auth.TokenPair) dto.AuthResponse {
	return dto.AuthResponse{
		Tokens: dto.TokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresIn:    pair.ExpiresIn,
		},
		Profile: dto.NewProfileResponse(user),
	}
}
