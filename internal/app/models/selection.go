package models

import "time"

// Selection is a member's persisted drill-down position in the
// geographic tree. It is a convenience cache, not a correctness
// requirement: losing it merely resets navigation to the top.
type Selection struct {
	UserID     int64     `json:"-" db:"user_id"`
	RegionID   *int64    `json:"regionId,omitempty" db:"region_id"`
	ProvinceID *int64    `json:"provinceId,omitempty" db:"province_id"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
