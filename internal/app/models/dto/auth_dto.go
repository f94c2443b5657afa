package dto

import "github.com/postigiusti/bacheca/internal/app/models"

// RegisterRequest is the payload for registering via an invite token
type RegisterRequest struct {
	InviteToken string `json:"inviteToken" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Nickname    string `json:"nickname" binding:"required,min=3,max=30"`
}

// LoginRequest is the payload for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the payload for refreshing an access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries a freshly issued token pair
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// ProfileResponse is the public view of a member profile
type ProfileResponse struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	Nickname  string          `json:"nickname"`
	RoleType  models.RoleType `json:"roleType"`
	IsActive  bool            `json:"isActive"`
	CreatedAt string          `json:"createdAt"`
}

// AuthResponse bundles tokens with the authenticated profile
type AuthResponse struct {
	Tokens  TokenResponse   `json:"tokens"`
	Profile ProfileResponse `json:"profile"`
}

// NewProfileResponse maps a user model to its public view
func NewProfileResponse(user *models.User) ProfileResponse {
	return ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		RoleType:  user.RoleType,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
