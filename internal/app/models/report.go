package models

import "time"

// ReportItemType identifies the kind of content a report targets
type ReportItemType string

// The two reportable content kinds
const (
	ReportItemPost    ReportItemType = "post"
	ReportItemComment ReportItemType = "comment"
)

// IsValid reports whether t is one of the two reportable item types.
func (t ReportItemType) IsValid() bool {
	return t == ReportItemPost || t == ReportItemComment
}

// ReportStatus tracks a report through admin review
type ReportStatus string

// Report lifecycle states. A report opens as "open" and an admin settles
// it as resolved or dismissed.
const (
	ReportStatusOpen      ReportStatus = "open"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// IsValid reports whether s is a known report status.
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusOpen, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

// Report is a member's flag on a post or comment. The excerpt captures
// the reported content at flag time, so the report stays meaningful even
// if the content is later removed.
type Report struct {
	ID             int64          `json:"id" db:"id"`
	ReportedBy     int64          `json:"reportedBy" db:"reported_by"`
	ReportedUser   int64          `json:"reportedUser" db:"reported_user"`
	ItemType       ReportItemType `json:"itemType" db:"item_type"`
	ItemID         int64          `json:"itemId" db:"item_id"`
	ContentExcerpt string         `json:"contentExcerpt" db:"content_excerpt"`
	Status         ReportStatus   `json:"status" db:"status"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
}
