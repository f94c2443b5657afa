package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postigiusti/bacheca/internal/app/models/dto"
	"github.com/postigiusti/bacheca/internal/app/services"
	"github.com/postigiusti/bacheca/internal/middleware"
)

// SelectionController persists each member's geographic drill-down
type SelectionController struct {
	selectionService services.SelectionService
}

// NewSelectionController creates a new SelectionController
func NewSelectionController(selectionService services.SelectionService) *SelectionController {
	return &SelectionController{selectionService: selectionService}
}

// GetSelection handles GET /api/v1/me/selection
func (sc *SelectionController) GetSelection(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	result, err := sc.selectionService.GetSelection(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(selectionResponse(result)))
}

// SaveSelection handles PUT /api/v1/me/selection
func (sc *SelectionController) SaveSelection(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.SaveSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidBody, "Invalid request body")))
		return
	}

	result, err := sc.selectionService.SaveSelection(c.Request.Context(), userID, req.RegionID, req.ProvinceID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(selectionResponse(result)))
}

func selectionResponse(result *services.SelectionResult) dto.SelectionResponse {
	return dto.SelectionResponse{
		RegionID:     result.RegionID,
		RegionName:   result.RegionName,
		ProvinceID:   result.ProvinceID,
		ProvinceName: result.ProvinceName,
	}
}
