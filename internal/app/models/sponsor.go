package models

import "time"

// SponsorAnnouncement is a promotional banner scoped to exactly one of
// three geographic levels. Unset region/province fields mean a broader
// scope: country-only rows are national, country+region rows are
// regional, all three set is provincial.
type SponsorAnnouncement struct {
	ID        int64     `json:"id" db:"id"`
	Country   *string   `json:"country,omitempty" db:"country"`
	Region    *string   `json:"region,omitempty" db:"region"`
	Province  *string   `json:"province,omitempty" db:"province"`
	Text      string    `json:"text" db:"text"`
	Link      *string   `json:"link,omitempty" db:"link"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SponsorHistoryEntry is a retired sponsor announcement. Deleting a
// banner moves it here instead of dropping the row, preserving an
// append-only audit trail of past campaigns.
type SponsorHistoryEntry struct {
	SponsorAnnouncement
	DeletedAt time.Time `json:"deletedAt" db:"deleted_at"`
}
