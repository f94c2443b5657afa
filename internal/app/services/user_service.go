package services

import (
	"context"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/app/repositories"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/email"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// UserService covers the admin panel's member management
type UserService interface {
	ListProfiles(ctx context.Context) ([]*models.User, error)
	ApproveProfile(ctx context.Context, userID int64) error
	SetProfileActive(ctx context.Context, userID int64, active bool) error
}

type userService struct {
	users   *repositories.UserRepository
	tokens  *repositories.TokenRepository
	invites *repositories.InviteRepository
	mailer  email.EmailService
}

// NewUserService creates a new UserService
func NewUserService(users *repositories.UserRepository, tokens *repositories.TokenRepository, invites *repositories.InviteRepository, mailer email.EmailService) UserService {
	return &userService{users: users, tokens: tokens, invites: invites, mailer: mailer}
}

// ListProfiles returns every member profile for the admin panel
func (s *userService) ListProfiles(ctx context.Context) ([]*models.User, error) {
	return s.users.GetAllUsers(ctx)
}

// ApproveProfile promotes a pending registration to full membership
func (s *userService) ApproveProfile(ctx context.Context, userID int64) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.RoleType != models.RolePending {
		return apperrors.NewConflictError("profile is not awaiting approval")
	}

	if err := s.users.UpdateRole(ctx, userID, models.RoleMember); err != nil {
		return err
	}

	// Releasing the invite returns a slot to the inviter's quota.
	if err := s.invites.ApproveInviteByUser(ctx, userID); err != nil {
		logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to mark invite approved")
	}

	if err := s.mailer.SendApprovalEmail(user.Email, user.Nickname); err != nil {
		logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to send approval email")
	}

	logger.Info().Int64("userID", userID).Msg("Profile approved")
	return nil
}

// SetProfileActive enables or disables an account. Disabling also revokes
// every refresh token so open sessions die at the next refresh.
func (s *userService) SetProfileActive(ctx context.Context, userID int64, active bool) error {
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		return err
	}

	if !active {
		if err := s.tokens.DeleteUserRefreshTokens(ctx, userID); err != nil {
			logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke refresh tokens")
		}
	}

	logger.Info().Int64("userID", userID).Bool("active", active).Msg("Profile activation changed")
	return nil
}
