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

// ReportRepository handles content report database operations
type ReportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const reportColumns = "id, reported_by, reported_user, item_type, item_id, content_excerpt, status, created_at"

func scanReport(row pgx.Row) (*models.Report, error) {
	report := &models.Report{}
	err := row.Scan(
		&report.ID,
		&report.ReportedBy,
		&report.ReportedUser,
		&report.ItemType,
		&report.ItemID,
		&report.ContentExcerpt,
		&report.Status,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// CreateReport inserts a new report in the open status
func (r *ReportRepository) CreateReport(ctx context.Context, report *models.Report) (int64, error) {
	sql, args, err := r.sb.Insert("reports").
		Columns("reported_by", "reported_user", "item_type", "item_id", "content_excerpt").
		Values(report.ReportedBy, report.ReportedUser, report.ItemType, report.ItemID, report.ContentExcerpt).
		Suffix("RETURNING id, status, created_at").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create report query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&report.ID, &report.Status, &report.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("reporterID", report.ReportedBy).Msg("Error executing create report query")
		return 0, fmt.Errorf("error creating report: %w", err)
	}

	return report.ID, nil
}

// GetReportByID retrieves a report by ID
func (r *ReportRepository) GetReportByID(ctx context.Context, id int64) (*models.Report, error) {
	sql, args, err := r.sb.Select(reportColumns).
		From("reports").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get report query: %w", err)
	}

	report, err := scanReport(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReportNotFound
		}
		logger.Error().Err(err).Int64("reportID", id).Msg("Error scanning report row")
		return nil, fmt.Errorf("error getting report: %w", err)
	}

	return report, nil
}

// GetAllReports retrieves every report, newest first
func (r *ReportRepository) GetAllReports(ctx context.Context) ([]models.Report, error) {
	return r.getReports(ctx, nil)
}

// GetReportsByStatus retrieves reports in a given state, newest first
func (r *ReportRepository) GetReportsByStatus(ctx context.Context, status models.ReportStatus) ([]models.Report, error) {
	return r.getReports(ctx, squirrel.Eq{"status": status})
}

func (r *ReportRepository) getReports(ctx context.Context, pred squirrel.Eq) ([]models.Report, error) {
	builder := r.sb.Select(reportColumns).
		From("reports").
		OrderBy("created_at DESC")
	if pred != nil {
		builder = builder.Where(pred)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get reports query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get reports query")
		return nil, fmt.Errorf("error querying reports: %w", err)
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning report row: %w", err)
		}
		reports = append(reports, *report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return reports, nil
}

// UpdateReportStatus moves a report to a new review state
func (r *ReportRepository) UpdateReportStatus(ctx context.Context, reportID int64, status models.ReportStatus) error {
	sql, args, err := r.sb.Update("reports").
		Set("status", status).
		Where(squirrel.Eq{"id": reportID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update report status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("reportID", reportID).Msg("Error executing update report status query")
		return fmt.Errorf("error updating report status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}

	return nil
}
