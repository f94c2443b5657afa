package dto

// CreateInviteRequest is the payload for issuing an invite. Email is
// optional: an unbound invite can be shared as a bare link.
type CreateInviteRequest struct {
	Email *string `json:"email" binding:"omitempty,email"`
}

// InviteResponse is the view of an issued invite returned to its inviter
type InviteResponse struct {
	ID        int64   `json:"id"`
	Token     string  `json:"token"`
	Email     *string `json:"email,omitempty"`
	Approved  bool    `json:"approved"`
	Used      bool    `json:"used"`
	CreatedAt string  `json:"createdAt"`
}

// InviteQuotaResponse reports how many invites a member may still issue
type InviteQuotaResponse struct {
	Limit     int `json:"limit"`
	Pending   int `json:"pending"`
	Remaining int `json:"remaining"`
}
