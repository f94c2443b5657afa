package dto

import "github.com/postigiusti/bacheca/internal/app/models"

// CreateReportRequest flags a post or comment. The reported author and
// excerpt are derived server-side from the item.
type CreateReportRequest struct {
	ItemType models.ReportItemType `json:"itemType" binding:"required"`
	ItemID   int64                 `json:"itemId" binding:"required"`
}

// UpdateReportStatusRequest settles or reopens a report
type UpdateReportStatusRequest struct {
	Status models.ReportStatus `json:"status" binding:"required"`
}
