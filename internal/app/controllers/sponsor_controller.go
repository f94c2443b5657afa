package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/app/models/dto"
	"github.com/postigiusti/bacheca/internal/app/services"
	"github.com/postigiusti/bacheca/internal/middleware"
)

// SponsorController resolves and administers sponsor banners
type SponsorController struct {
	sponsorService services.SponsorService
}

// NewSponsorController creates a new SponsorController
func NewSponsorController(sponsorService services.SponsorService) *SponsorController {
	return &SponsorController{sponsorService: sponsorService}
}

// ResolveBanner handles GET /api/v1/sponsor?region=&province=
func (sc *SponsorController) ResolveBanner(c *gin.Context) {
	banner, err := sc.sponsorService.ResolveBanner(c.Request.Context(), c.Query("region"), c.Query("province"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	// No matching banner is a normal outcome, not an error.
	c.JSON(http.StatusOK, dto.NewSuccessResponse(banner))
}

// ListSponsors handles GET /api/v1/admin/sponsors
func (sc *SponsorController) ListSponsors(c *gin.Context) {
	sponsors, err := sc.sponsorService.ListSponsors(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(sponsors))
}

// UpsertSponsor handles PUT /api/v1/admin/sponsors
func (sc *SponsorController) UpsertSponsor(c *gin.Context) {
	var req dto.UpsertSponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidBody, "Invalid request body")))
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	country := strings.ToLower(strings.TrimSpace(req.Country))
	sponsor := &models.SponsorAnnouncement{
		Country:  &country,
		Region:   req.Region,
		Province: req.Province,
		Text:     strings.TrimSpace(req.Text),
		Link:     req.Link,
		ImageURL: req.ImageURL,
		Active:   active,
	}

	id, err := sc.sponsorService.UpsertSponsor(c.Request.Context(), sponsor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	sponsor.ID = id

	c.JSON(http.StatusOK, dto.NewSuccessResponse(sponsor))
}

// DeleteSponsor handles DELETE /api/v1/admin/sponsors/:id
func (sc *SponsorController) DeleteSponsor(c *gin.Context) {
	sponsorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid sponsor ID")))
		return
	}

	if err := sc.sponsorService.DeleteSponsor(c.Request.Context(), sponsorID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}

// ListHistory handles GET /api/v1/admin/sponsors/history
func (sc *SponsorController) ListHistory(c *gin.Context) {
	entries, err := sc.sponsorService.ListHistory(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(entries))
}
