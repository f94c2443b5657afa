package services

import (
	"context"
	"sync"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// GeoStore is the data access needed by the geo service
type GeoStore interface {
	GetAllRegions(ctx context.Context) ([]models.Region, error)
	GetRegionByID(ctx context.Context, id int64) (*models.Region, error)
	GetProvincesByRegionID(ctx context.Context, regionID int64) ([]models.Province, error)
	GetProvinceByID(ctx context.Context, id int64) (*models.Province, error)
}

// GeoService serves the region and province drill-down
type GeoService interface {
	GetRegions(ctx context.Context) ([]models.Region, error)
	GetRegion(ctx context.Context, id int64) (*models.Region, error)
	GetProvinces(ctx context.Context, regionID int64) ([]models.Province, error)
	GetProvince(ctx context.Context, id int64) (*models.Province, error)
}

// geoService caches geography reads for the lifetime of the process.
// Regions and provinces change only via migrations or seeding, so the
// cache is append-only and never invalidated.
type geoService struct {
	store GeoStore

	mu          sync.RWMutex
	regions     []models.Region
	regionsByID map[int64]models.Region
	provinces   map[int64][]models.Province
	provByID    map[int64]models.Province
}

// NewGeoService creates a new GeoService
func NewGeoService(store GeoStore) GeoService {
	return &geoService{
		store:       store,
		regionsByID: make(map[int64]models.Region),
		provinces:   make(map[int64][]models.Province),
		provByID:    make(map[int64]models.Province),
	}
}

// GetRegions returns all regions, from cache after the first load
func (s *geoService) GetRegions(ctx context.Context) ([]models.Region, error) {
	s.mu.RLock()
	if s.regions != nil {
		regions := s.regions
		s.mu.RUnlock()
		return regions, nil
	}
	s.mu.RUnlock()

	regions, err := s.store.GetAllRegions(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.regions == nil {
		s.regions = regions
		for _, region := range regions {
			s.regionsByID[region.ID] = region
		}
	}
	s.mu.Unlock()

	logger.Debug().Int("count", len(regions)).Msg("Region list cached")
	return regions, nil
}

// GetRegion returns a single region, falling back to the store on a cache miss
func (s *geoService) GetRegion(ctx context.Context, id int64) (*models.Region, error) {
	s.mu.RLock()
	if region, ok := s.regionsByID[id]; ok {
		s.mu.RUnlock()
		return &region, nil
	}
	s.mu.RUnlock()

	region, err := s.store.GetRegionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.regionsByID[region.ID] = *region
	s.mu.Unlock()

	return region, nil
}

// GetProvinces returns a region's provinces, cached per region
func (s *geoService) GetProvinces(ctx context.Context, regionID int64) ([]models.Province, error) {
	s.mu.RLock()
	if provinces, ok := s.provinces[regionID]; ok {
		s.mu.RUnlock()
		return provinces, nil
	}
	s.mu.RUnlock()

	// Validate the region exists so an unknown ID yields a 404 rather
	// than an empty list.
	if _, err := s.GetRegion(ctx, regionID); err != nil {
		return nil, err
	}

	provinces, err := s.store.GetProvincesByRegionID(ctx, regionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, ok := s.provinces[regionID]; !ok {
		s.provinces[regionID] = provinces
		for _, province := range provinces {
			s.provByID[province.ID] = province
		}
	}
	s.mu.Unlock()

	return provinces, nil
}

// GetProvince returns a single province, falling back to the store on a cache miss
func (s *geoService) GetProvince(ctx context.Context, id int64) (*models.Province, error) {
	s.mu.RLock()
	if province, ok := s.provByID[id]; ok {
		s.mu.RUnlock()
		return &province, nil
	}
	s.mu.RUnlock()

	province, err := s.store.GetProvinceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.provByID[province.ID] = *province
	s.mu.Unlock()

	return province, nil
}
