package models

import "time"

// Invite is a single-use registration token. The used flag, once true,
// never reverts; a consumed token cannot authorize a second sign-up.
type Invite struct {
	ID        int64     `json:"id" db:"id"`
	Token     string    `json:"token" db:"token"`
	Email     *string   `json:"email,omitempty" db:"email"` // Optional binding to an address
	InvitedBy int64     `json:"invitedBy" db:"invited_by"`
	Approved  bool      `json:"approved" db:"approved"`
	Used      bool      `json:"used" db:"used"`
	UsedBy    *int64    `json:"usedBy,omitempty" db:"used_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Pending reports whether the invite still counts against its
// creator's quota: anything not yet both approved and consumed does.
func (i *Invite) Pending() bool {
	return !i.Approved || !i.Used
}
