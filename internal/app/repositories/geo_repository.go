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

// GeoRepository handles region and province database operations
type GeoRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGeoRepository creates a new GeoRepository
func NewGeoRepository(db *pgxpool.Pool) *GeoRepository {
	return &GeoRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAllRegions retrieves all regions ordered by name
func (r *GeoRepository) GetAllRegions(ctx context.Context) ([]models.Region, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("regions").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get regions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get regions query")
		return nil, fmt.Errorf("error querying regions: %w", err)
	}
	defer rows.Close()

	regions := []models.Region{}
	for rows.Next() {
		var region models.Region
		if err := rows.Scan(&region.ID, &region.Name); err != nil {
			return nil, fmt.Errorf("error scanning region row: %w", err)
		}
		regions = append(regions, region)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating region rows: %w", err)
	}

	return regions, nil
}

// GetRegionByID retrieves a single region
func (r *GeoRepository) GetRegionByID(ctx context.Context, id int64) (*models.Region, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("regions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get region query: %w", err)
	}

	region := &models.Region{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&region.ID, &region.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegionNotFound
		}
		logger.Error().Err(err).Int64("regionID", id).Msg("Error scanning region row")
		return nil, fmt.Errorf("error getting region: %w", err)
	}

	return region, nil
}

// GetProvincesByRegionID retrieves a region's provinces ordered by name
func (r *GeoRepository) GetProvincesByRegionID(ctx context.Context, regionID int64) ([]models.Province, error) {
	sql, args, err := r.sb.Select("id", "region_id", "name").
		From("provinces").
		Where(squirrel.Eq{"region_id": regionID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get provinces query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("regionID", regionID).Msg("Error executing get provinces query")
		return nil, fmt.Errorf("error querying provinces: %w", err)
	}
	defer rows.Close()

	provinces := []models.Province{}
	for rows.Next() {
		var province models.Province
		if err := rows.Scan(&province.ID, &province.RegionID, &province.Name); err != nil {
			return nil, fmt.Errorf("error scanning province row: %w", err)
		}
		provinces = append(provinces, province)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating province rows: %w", err)
	}

	return provinces, nil
}

// GetProvinceByID retrieves a single province
func (r *GeoRepository) GetProvinceByID(ctx context.Context, id int64) (*models.Province, error) {
	sql, args, err := r.sb.Select("id", "region_id", "name").
		From("provinces").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get province query: %w", err)
	}

	province := &models.Province{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&province.ID, &province.RegionID, &province.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProvinceNotFound
		}
		logger.Error().Err(err).Int64("provinceID", id).Msg("Error scanning province row")
		return nil, fmt.Errorf("error getting province: %w", err)
	}

	return province, nil
}

// CreateRegion inserts a region, used by the seeder
func (r *GeoRepository) CreateRegion(ctx context.Context, name string) (int64, error) {
	sql, args, err := r.sb.Insert("regions").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create region query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating region: %w", err)
	}

	return id, nil
}

// CreateProvince inserts a province, used by the seeder
func (r *GeoRepository) CreateProvince(ctx context.Context, regionID int64, name string) (int64, error) {
	sql, args, err := r.sb.Insert("provinces").
		Columns("region_id", "name").
		Values(regionID, name).
		Suffix("ON CONFLICT (region_id, name) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create province query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating province: %w", err)
	}

	return id, nil
}
