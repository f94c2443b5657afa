package services

import (
	"context"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
)

// SelectionStore is the data access needed by the selection service
type SelectionStore interface {
	GetSelection(ctx context.Context, userID int64) (*models.Selection, error)
	SaveSelection(ctx context.Context, selection *models.Selection) error
}

// SelectionResult is a saved drill-down with the names resolved
type SelectionResult struct {
	RegionID     *int64
	RegionName   *string
	ProvinceID   *int64
	ProvinceName *string
}

// SelectionService persists each member's last region and province choice
type SelectionService interface {
	GetSelection(ctx context.Context, userID int64) (*SelectionResult, error)
	SaveSelection(ctx context.Context, userID int64, regionID, provinceID *int64) (*SelectionResult, error)
}

type selectionService struct {
	store SelectionStore
	geo   GeoService
}

// NewSelectionService creates a new SelectionService
func NewSelectionService(store SelectionStore, geo GeoService) SelectionService {
	return &selectionService{store: store, geo: geo}
}

// GetSelection returns a member's saved selection, empty when none exists
func (s *selectionService) GetSelection(ctx context.Context, userID int64) (*SelectionResult, error) {
	selection, err := s.store.GetSelection(ctx, userID)
	if err != nil {
		return nil, err
	}
	if selection == nil {
		return &SelectionResult{}, nil
	}

	return s.resolve(ctx, selection.RegionID, selection.ProvinceID)
}

// SaveSelection validates and persists a drill-down. Selecting a province
// requires its region; selecting only a region clears any stale province.
// A nil region resets the selection entirely.
func (s *selectionService) SaveSelection(ctx context.Context, userID int64, regionID, provinceID *int64) (*SelectionResult, error) {
	if regionID == nil {
		provinceID = nil
	}

	if regionID != nil {
		if _, err := s.geo.GetRegion(ctx, *regionID); err != nil {
			return nil, err
		}
	}
	if provinceID != nil {
		province, err := s.geo.GetProvince(ctx, *provinceID)
		if err != nil {
			return nil, err
		}
		if province.RegionID != *regionID {
			return nil, apperrors.NewBadRequestError("province does not belong to the selected region")
		}
	}

	selection := &models.Selection{
		UserID:     userID,
		RegionID:   regionID,
		ProvinceID: provinceID,
	}
	if err := s.store.SaveSelection(ctx, selection); err != nil {
		return nil, err
	}

	return s.resolve(ctx, regionID, provinceID)
}

func (s *selectionService) resolve(ctx context.Context, regionID, provinceID *int64) (*SelectionResult, error) {
	result := &SelectionResult{RegionID: regionID, ProvinceID: provinceID}

	if regionID != nil {
		region, err := s.geo.GetRegion(ctx, *regionID)
		if err != nil {
			return nil, err
		}
		result.RegionName = &region.Name
	}
	if provinceID != nil {
		province, err := s.geo.GetProvince(ctx, *provinceID)
		if err != nil {
			return nil, err
		}
		result.ProvinceName = &province.Name
	}

	return result, nil
}
