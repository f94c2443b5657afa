package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/email"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
	"github.com/postigiusti/bacheca/internal/pkg/validation"
)

// InviteQuota is the maximum number of pending invites a member may hold.
// An invite stops counting against the quota once it is both used and
// its registration approved by an admin.
const InviteQuota = 3

// InviteStore is the data access needed by the invite service
type InviteStore interface {
	CreateInvite(ctx context.Context, invite *models.Invite) (int64, error)
	GetInviteByToken(ctx context.Context, token string) (*models.Invite, error)
	ApproveInvite(ctx context.Context, inviteID int64) error
	CountPendingByInviter(ctx context.Context, inviterID int64) (int, error)
	HasOpenInviteForEmail(ctx context.Context, email string) (bool, error)
	GetInvitesByInviter(ctx context.Context, inviterID int64) ([]models.Invite, error)
	GetAllInvites(ctx context.Context) ([]models.Invite, error)
}

// InviteService manages the invite-only onboarding flow
type InviteService interface {
	CreateInvite(ctx context.Context, inviter *models.User, targetEmail *string) (*models.Invite, error)
	VerifyToken(ctx context.Context, token string) (*models.Invite, error)
	Approve(ctx context.Context, inviteID int64) error
	ListMine(ctx context.Context, inviterID int64) ([]models.Invite, error)
	ListAll(ctx context.Context) ([]models.Invite, error)
	GetQuota(ctx context.Context, inviterID int64) (limit, pending int, err error)
}

type inviteService struct {
	store  InviteStore
	mailer email.EmailService
}

// NewInviteService creates a new InviteService
func NewInviteService(store InviteStore, mailer email.EmailService) InviteService {
	return &inviteService{store: store, mailer: mailer}
}

// CreateInvite issues a single-use invite token, optionally bound to an
// email address. A bound invite is rejected while another unused invite
// already targets the same address.
func (s *inviteService) CreateInvite(ctx context.Context, inviter *models.User, targetEmail *string) (*models.Invite, error) {
	pending, err := s.store.CountPendingByInviter(ctx, inviter.ID)
	if err != nil {
		return nil, err
	}
	if pending >= InviteQuota {
		return nil, apperrors.ErrInviteQuotaExceeded
	}

	if targetEmail != nil {
		normalized := strings.ToLower(strings.TrimSpace(*targetEmail))
		if !validation.IsValidEmail(normalized) {
			return nil, apperrors.NewBadRequestError("invalid email address")
		}
		targetEmail = &normalized

		open, err := s.store.HasOpenInviteForEmail(ctx, normalized)
		if err != nil {
			return nil, err
		}
		if open {
			return nil, apperrors.ErrInviteEmailOpen
		}
	}

	invite := &models.Invite{
		Token:     uuid.NewString(),
		Email:     targetEmail,
		InvitedBy: inviter.ID,
	}

	if _, err := s.store.CreateInvite(ctx, invite); err != nil {
		return nil, err
	}

	if targetEmail != nil {
		if err := s.mailer.SendInviteEmail(*targetEmail, inviter.Nickname, invite.Token); err != nil {
			// The invite is already issued; the token can still be
			// shared by hand.
			logger.Warn().Err(err).Str("email", *targetEmail).Msg("Failed to send invite email")
		}
	}

	logger.Info().Int64("inviteID", invite.ID).Int64("inviterID", inviter.ID).Msg("Invite issued")
	return invite, nil
}

// VerifyToken checks that a token exists and is still unused
func (s *inviteService) VerifyToken(ctx context.Context, token string) (*models.Invite, error) {
	invite, err := s.store.GetInviteByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return nil, err
	}
	if invite.Used {
		return nil, apperrors.ErrInviteNotFound
	}
	return invite, nil
}

// Approve marks an invite's registration as admin-approved, releasing it
// from the inviter's quota once the invite is also used
func (s *inviteService) Approve(ctx context.Context, inviteID int64) error {
	if err := s.store.ApproveInvite(ctx, inviteID); err != nil {
		return err
	}
	logger.Info().Int64("inviteID", inviteID).Msg("Invite approved")
	return nil
}

// ListMine returns the invites a member has issued
func (s *inviteService) ListMine(ctx context.Context, inviterID int64) ([]models.Invite, error) {
	return s.store.GetInvitesByInviter(ctx, inviterID)
}

// ListAll returns every invite for the admin panel
func (s *inviteService) ListAll(ctx context.Context) ([]models.Invite, error) {
	return s.store.GetAllInvites(ctx)
}

// GetQuota reports the invite limit and how much of it is in use
func (s *inviteService) GetQuota(ctx context.Context, inviterID int64) (int, int, error) {
	pending, err := s.store.CountPendingByInviter(ctx, inviterID)
	if err != nil {
		return 0, 0, err
	}
	return InviteQuota, pending, nil
}
