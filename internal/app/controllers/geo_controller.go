package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/postigiusti/bacheca/internal/app/models/dto"
	"github.com/postigiusti/bacheca/internal/app/services"
	"github.com/postigiusti/bacheca/internal/middleware"
)

// GeoController serves the region and province drill-down
type GeoController struct {
	geoService services.GeoService
}

// NewGeoController creates a new GeoController
func NewGeoController(geoService services.GeoService) *GeoController {
	return &GeoController{geoService: geoService}
}

// GetRegions handles GET /api/v1/regions
func (gc *GeoController) GetRegions(c *gin.Context) {
	regions, err := gc.geoService.GetRegions(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(regions))
}

// GetProvinces handles GET /api/v1/regions/:id/provinces
func (gc *GeoController) GetProvinces(c *gin.Context) {
	regionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid region ID")))
		return
	}

	provinces, err := gc.geoService.GetProvinces(c.Request.Context(), regionID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(provinces))
}
