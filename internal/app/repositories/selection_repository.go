package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// SelectionRepository persists each member's last geographic drill-down
type SelectionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSelectionRepository creates a new SelectionRepository
func NewSelectionRepository(db *pgxpool.Pool) *SelectionRepository {
	return &SelectionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetSelection retrieves a member's saved selection, nil when none exists
func (r *SelectionRepository) GetSelection(ctx context.Context, userID int64) (*models.Selection, error) {
	sql, args, err := r.sb.Select("user_id", "region_id", "province_id", "updated_at").
		From("selections").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get selection query: %w", err)
	}

	selection := &models.Selection{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&selection.UserID,
		&selection.RegionID,
		&selection.ProvinceID,
		&selection.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning selection row")
		return nil, fmt.Errorf("error getting selection: %w", err)
	}

	return selection, nil
}

// SaveSelection upserts a member's selection
func (r *SelectionRepository) SaveSelection(ctx context.Context, selection *models.Selection) error {
	sql, args, err := r.sb.Insert("selections").
		Columns("user_id", "region_id", "province_id", "updated_at").
		Values(selection.UserID, selection.RegionID, selection.ProvinceID, time.Now()).
		Suffix(`ON CONFLICT (user_id)
			DO UPDATE SET region_id = EXCLUDED.region_id,
				province_id = EXCLUDED.province_id,
				updated_at = EXCLUDED.updated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build save selection query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", selection.UserID).Msg("Error saving selection")
		return fmt.Errorf("error saving selection: %w", err)
	}

	return nil
}
