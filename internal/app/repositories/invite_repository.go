package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// InviteRepository handles invite database operations
type InviteRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInviteRepository creates a new InviteRepository
func NewInviteRepository(db *pgxpool.Pool) *InviteRepository {
	return &InviteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const inviteColumns = "id, token, email, invited_by, approved, used, used_by, created_at"

func scanInvite(row pgx.Row) (*models.Invite, error) {
	invite := &models.Invite{}
	err := row.Scan(
		&invite.ID,
		&invite.Token,
		&invite.Email,
		&invite.InvitedBy,
		&invite.Approved,
		&invite.Used,
		&invite.UsedBy,
		&invite.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return invite, nil
}

// CreateInvite inserts a new invite
func (r *InviteRepository) CreateInvite(ctx context.Context, invite *models.Invite) (int64, error) {
	sql, args, err := r.sb.Insert("invites").
		Columns("token", "email", "invited_by").
		Values(invite.Token, invite.Email, invite.InvitedBy).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create invite query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&invite.ID, &invite.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("inviterID", invite.InvitedBy).Msg("Error executing create invite query")
		return 0, fmt.Errorf("error creating invite: %w", err)
	}

	return invite.ID, nil
}

// GetInviteByToken retrieves an invite by its token
func (r *InviteRepository) GetInviteByToken(ctx context.Context, token string) (*models.Invite, error) {
	sql, args, err := r.sb.Select(inviteColumns).
		From("invites").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get invite query: %w", err)
	}

	invite, err := scanInvite(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInviteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning invite row")
		return nil, fmt.Errorf("error getting invite: %w", err)
	}

	return invite, nil
}

// ApproveInvite marks an invite's registration as approved by an admin
func (r *InviteRepository) ApproveInvite(ctx context.Context, inviteID int64) error {
	sql, args, err := r.sb.Update("invites").
		Set("approved", true).
		Where(squirrel.Eq{"id": inviteID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build approve invite query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("inviteID", inviteID).Msg("Error executing approve invite query")
		return fmt.Errorf("error approving invite: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInviteNotFound
	}

	return nil
}

// ApproveInviteByUser marks the invite consumed by a given user as
// approved, releasing it from the inviter's quota.
func (r *InviteRepository) ApproveInviteByUser(ctx context.Context, usedBy int64) error {
	sql, args, err := r.sb.Update("invites").
		Set("approved", true).
		Where(squirrel.Eq{"used_by": usedBy}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build approve invite by user query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("usedBy", usedBy).Msg("Error executing approve invite by user query")
		return fmt.Errorf("error approving invite: %w", err)
	}

	return nil
}

// CountPendingByInviter counts a member's invites that are not yet both used
// and approved. This is the number charged against the invite quota.
func (r *InviteRepository) CountPendingByInviter(ctx context.Context, inviterID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("invites").
		Where(squirrel.Eq{"invited_by": inviterID}).
		Where(squirrel.Or{
			squirrel.Eq{"approved": false},
			squirrel.Eq{"used": false},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count pending invites query: %w", err)
	}

	var count int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		logger.Error().Err(err).Int64("inviterID", inviterID).Msg("Error counting pending invites")
		return 0, fmt.Errorf("error counting pending invites: %w", err)
	}

	return count, nil
}

// HasOpenInviteForEmail reports whether an unused invite already targets the email
func (r *InviteRepository) HasOpenInviteForEmail(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("invites").
		Where(squirrel.Eq{"email": email, "used": false}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("failed to build open invite query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("email", email).Msg("Error checking open invites")
		return false, fmt.Errorf("error checking open invites: %w", err)
	}

	return exists, nil
}

// GetInvitesByInviter retrieves a member's invites, newest first
func (r *InviteRepository) GetInvitesByInviter(ctx context.Context, inviterID int64) ([]models.Invite, error) {
	return r.getInvites(ctx, squirrel.Eq{"invited_by": inviterID})
}

// GetAllInvites retrieves every invite, newest first
func (r *InviteRepository) GetAllInvites(ctx context.Context) ([]models.Invite, error) {
	return r.getInvites(ctx, nil)
}

func (r *InviteRepository) getInvites(ctx context.Context, pred squirrel.Eq) ([]models.Invite, error) {
	builder := r.sb.Select(inviteColumns).
		From("invites").
		OrderBy("created_at DESC")
	if pred != nil {
		builder = builder.Where(pred)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get invites query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get invites query")
		return nil, fmt.Errorf("error querying invites: %w", err)
	}
	defer rows.Close()

	invites := []models.Invite{}
	for rows.Next() {
		invite, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning invite row: %w", err)
		}
		invites = append(invites, *invite)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invite rows: %w", err)
	}

	return invites, nil
}
