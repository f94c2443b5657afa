package models

import "time"

// User defines the member profile model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id"`
	Email       string     `json:"email" db:"email"`
	Password    string     `json:"-" db:"password"` // Hashed password, excluded from JSON
	Nickname    string     `json:"nickname" db:"nickname"`
	RoleType    RoleType   `json:"roleType" db:"role_type"`
	InvitedBy   *int64     `json:"invitedBy,omitempty" db:"invited_by"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
