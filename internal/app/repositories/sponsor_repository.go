package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/db"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// SponsorRepository handles sponsor announcement database operations
type SponsorRepository struct {
	db   *pgxpool.Pool
	pgdb *db.PostgresDB
	sb   squirrel.StatementBuilderType
}

// NewSponsorRepository creates a new SponsorRepository
func NewSponsorRepository(pgdb *db.PostgresDB) *SponsorRepository {
	return &SponsorRepository{
		db:   pgdb.Pool,
		pgdb: pgdb,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const sponsorColumns = "id, country, region, province, text, link, image_url, active, created_at"

// GetActiveSponsors retrieves all active sponsor announcements
func (r *SponsorRepository) GetActiveSponsors(ctx context.Context) ([]models.SponsorAnnouncement, error) {
	return r.getSponsors(ctx, squirrel.Eq{"active": true})
}

// GetAllSponsors retrieves every sponsor announcement
func (r *SponsorRepository) GetAllSponsors(ctx context.Context) ([]models.SponsorAnnouncement, error) {
	return r.getSponsors(ctx, nil)
}

func (r *SponsorRepository) getSponsors(ctx context.Context, pred squirrel.Eq) ([]models.SponsorAnnouncement, error) {
	builder := r.sb.Select(sponsorColumns).
		From("sponsor_announcements").
		OrderBy("created_at DESC")
	if pred != nil {
		builder = builder.Where(pred)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get sponsors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get sponsors query")
		return nil, fmt.Errorf("error querying sponsors: %w", err)
	}
	defer rows.Close()

	sponsors := []models.SponsorAnnouncement{}
	for rows.Next() {
		var s models.SponsorAnnouncement
		err := rows.Scan(
			&s.ID,
			&s.Country,
			&s.Region,
			&s.Province,
			&s.Text,
			&s.Link,
			&s.ImageURL,
			&s.Active,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning sponsor row: %w", err)
		}
		sponsors = append(sponsors, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sponsor rows: %w", err)
	}

	return sponsors, nil
}

// UpsertSponsor creates or replaces the sponsor announcement for a scope.
// One announcement per (country, region, province) scope is kept.
func (r *SponsorRepository) UpsertSponsor(ctx context.Context, s *models.SponsorAnnouncement) (int64, error) {
	sql, args, err := r.sb.Insert("sponsor_announcements").
		Columns("country", "region", "province", "text", "link", "image_url", "active").
		Values(s.Country, s.Region, s.Province, s.Text, s.Link, s.ImageURL, s.Active).
		Suffix(`ON CONFLICT (country, region, province)
			DO UPDATE SET text = EXCLUDED.text, link = EXCLUDED.link,
				image_url = EXCLUDED.image_url, active = EXCLUDED.active
			RETURNING id`).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build upsert sponsor query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing upsert sponsor query")
		return 0, fmt.Errorf("error upserting sponsor: %w", err)
	}

	return id, nil
}

// MoveSponsorToHistory archives a sponsor announcement and removes it from
// the active table in one transaction.
func (r *SponsorRepository) MoveSponsorToHistory(ctx context.Context, sponsorID int64) error {
	return r.pgdb.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		insertSQL, insertArgs, err := r.sb.Insert("sponsor_history").
			Columns("id", "country", "region", "province", "text", "link", "image_url", "active", "created_at").
			Select(squirrel.Select("id", "country", "region", "province", "text", "link", "image_url", "active", "created_at").
				From("sponsor_announcements").
				Where(squirrel.Eq{"id": sponsorID})).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build sponsor history insert: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, insertSQL, insertArgs...)
		if err != nil {
			return fmt.Errorf("error archiving sponsor: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrSponsorNotFound
		}

		deleteSQL, deleteArgs, err := r.sb.Delete("sponsor_announcements").
			Where(squirrel.Eq{"id": sponsorID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build sponsor delete: %w", err)
		}

		if _, err := tx.Exec(ctx, deleteSQL, deleteArgs...); err != nil {
			return fmt.Errorf("error deleting sponsor: %w", err)
		}

		return nil
	})
}

// GetSponsorHistory retrieves archived sponsor announcements, newest first
func (r *SponsorRepository) GetSponsorHistory(ctx context.Context) ([]models.SponsorHistoryEntry, error) {
	sql, args, err := r.sb.Select(
		"id", "country", "region", "province",
		"text", "link", "image_url", "active", "created_at", "deleted_at").
		From("sponsor_history").
		OrderBy("deleted_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build sponsor history query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing sponsor history query")
		return nil, fmt.Errorf("error querying sponsor history: %w", err)
	}
	defer rows.Close()

	entries := []models.SponsorHistoryEntry{}
	for rows.Next() {
		var e models.SponsorHistoryEntry
		err := rows.Scan(
			&e.ID,
			&e.Country,
			&e.Region,
			&e.Province,
			&e.Text,
			&e.Link,
			&e.ImageURL,
			&e.Active,
			&e.CreatedAt,
			&e.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning sponsor history row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sponsor history rows: %w", err)
	}

	return entries, nil
}
