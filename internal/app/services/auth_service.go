package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/app/repositories"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/auth"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
	"github.com/postigiusti/bacheca/internal/pkg/validation"
)

// AuthUserStore is the user data access needed by the auth service
type AuthUserStore interface {
	CreateUserWithInvite(ctx context.Context, user *models.User, inviteToken string) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	NicknameExists(ctx context.Context, nickname string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// TokenStore is the refresh token persistence needed by the auth service
type TokenStore interface {
	StoreRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*repositories.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteUserRefreshTokens(ctx context.Context, userID int64) error
}

// AuthService handles registration, login, and token refresh
type AuthService interface {
	Register(ctx context.Context, inviteToken, email, password, nickname string) (*models.User, *auth.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *auth.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.User, *auth.TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
}

type authService struct {
	users   AuthUserStore
	tokens  TokenStore
	invites InviteStore
	jwt     *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users AuthUserStore, tokens TokenStore, invites InviteStore, jwt *auth.JWTService) AuthService {
	return &authService{
		users:   users,
		tokens:  tokens,
		invites: invites,
		jwt:     jwt,
	}
}

// Register creates a member profile from a valid invite token. The new
// profile starts in the pending role until an admin approves it, and the
// invite is consumed atomically so a token registers exactly one profile.
func (s *authService) Register(ctx context.Context, inviteToken, email, password, nickname string) (*models.User, *auth.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	nickname = strings.TrimSpace(nickname)

	if !validation.IsValidEmail(email) {
		return nil, nil, apperrors.NewBadRequestError("invalid email address")
	}
	if !validation.IsValidNickname(nickname) {
		return nil, nil, apperrors.NewBadRequestError("nickname must be 3-30 characters: letters, digits, dot, dash, underscore")
	}
	if len(password) < validation.PasswordMinLength {
		return nil, nil, apperrors.NewBadRequestError("password must be at least 8 characters")
	}

	invite, err := s.invites.GetInviteByToken(ctx, strings.TrimSpace(inviteToken))
	if err != nil {
		return nil, nil, err
	}
	if invite.Used {
		return nil, nil, apperrors.ErrInviteNotFound
	}
	if invite.Email != nil && !strings.EqualFold(*invite.Email, email) {
		return nil, nil, apperrors.NewBadRequestError("invite is bound to a different email address")
	}

	if exists, err := s.users.EmailExists(ctx, email); err != nil {
		return nil, nil, err
	} else if exists {
		return nil, nil, apperrors.ErrEmailAlreadyExists
	}
	if exists, err := s.users.NicknameExists(ctx, nickname); err != nil {
		return nil, nil, err
	} else if exists {
		return nil, nil, apperrors.ErrNicknameAlreadyTaken
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		Nickname:  nickname,
		RoleType:  models.RolePending,
		InvitedBy: &invite.InvitedBy,
		IsActive:  true,
	}

	// Creating the profile and consuming the invite happen in one
	// transaction: when a concurrent registration spends the token
	// between our read and this call, the profile is rolled back too.
	userID, err := s.users.CreateUserWithInvite(ctx, user, invite.Token)
	if err != nil {
		return nil, nil, err
	}
	user.ID = userID

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info().Int64("userID", userID).Str("nickname", nickname).Msg("Profile registered via invite")
	return user, pair, nil
}

// Login verifies credentials and issues a token pair
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, *auth.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to stamp last login")
	}

	return user, pair, nil
}

// RefreshToken rotates a refresh token into a fresh token pair
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.User, *auth.TokenPair, error) {
	stored, err := s.tokens.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Logout revokes all of a user's refresh tokens
func (s *authService) Logout(ctx context.Context, userID int64) error {
	return s.tokens.DeleteUserRefreshTokens(ctx, userID)
}

// GetProfile returns the authenticated member's profile
func (s *authService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*auth.TokenPair, error) {
	pair, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	expiry := s.jwt.GetRefreshTokenExpiry()
	if err := s.tokens.StoreRefreshToken(ctx, user.ID, pair.RefreshToken, expiry); err != nil {
		return nil, err
	}

	return pair, nil
}
