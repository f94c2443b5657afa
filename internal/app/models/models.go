package models

// RoleType defines the membership role of a profile
type RoleType string

const (
	RolePending RoleType = "PENDING" // Registered but not yet approved by an admin
	RoleMember  RoleType = "MEMBER"  // Approved member
	RoleAdmin   RoleType = "ADMIN"   // Administrator
)

// PostCategory defines the two classified-announcement categories
type PostCategory string

const (
	CategorySeeking  PostCategory = "SEEKING"  // Looking for housing
	CategoryOffering PostCategory = "OFFERING" // Offering housing
)

// IsValid reports whether c is one of the two accepted categories.
func (c PostCategory) IsValid() bool {
	return c == CategorySeeking || c == CategoryOffering
}
