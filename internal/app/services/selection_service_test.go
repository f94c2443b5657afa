package services

import (
	"context"
	"testing"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSelectionStore struct {
	selections map[int64]*models.Selection
}

func newFakeSelectionStore() *fakeSelectionStore {
	return &fakeSelectionStore{selections: make(map[int64]*models.Selection)}
}

func (f *fakeSelectionStore) GetSelection(_ context.Context, userID int64) (*models.Selection, error) {
	selection, ok := f.selections[userID]
	if !ok {
		return nil, nil
	}
	copied := *selection
	return &copied, nil
}

func (f *fakeSelectionStore) SaveSelection(_ context.Context, selection *models.Selection) error {
	copied := *selection
	f.selections[selection.UserID] = &copied
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func newSelectionFixture() SelectionService {
	return NewSelectionService(newFakeSelectionStore(), NewGeoService(newFakeGeoStore()))
}

func TestSelectionEmptyByDefault(t *testing.T) {
	svc := newSelectionFixture()

	result, err := svc.GetSelection(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, result.RegionID)
	assert.Nil(t, result.ProvinceID)
}

func TestSelectionRoundTripResolvesNames(t *testing.T) {
	svc := newSelectionFixture()

	saved, err := svc.SaveSelection(context.Background(), 1, int64Ptr(1), int64Ptr(10))
	require.NoError(t, err)
	require.NotNil(t, saved.RegionName)
	require.NotNil(t, saved.ProvinceName)
	assert.Equal(t, "Lombardia", *saved.RegionName)
	assert.Equal(t, "Milano", *saved.ProvinceName)

	loaded, err := svc.GetSelection(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, loaded.RegionID)
	require.NotNil(t, loaded.ProvinceID)
	assert.Equal(t, int64(1), *loaded.RegionID)
	assert.Equal(t, int64(10), *loaded.ProvinceID)
}

func TestSelectionRegionOnlyClearsProvince(t *testing.T) {
	svc := newSelectionFixture()

	_, err := svc.SaveSelection(context.Background(), 1, int64Ptr(1), int64Ptr(10))
	require.NoError(t, err)

	// Re-selecting just a region drops the stale province
	result, err := svc.SaveSelection(context.Background(), 1, int64Ptr(2), nil)
	require.NoError(t, err)
	require.NotNil(t, result.RegionID)
	assert.Equal(t, int64(2), *result.RegionID)
	assert.Nil(t, result.ProvinceID)
}

func TestSelectionNilRegionResets(t *testing.T) {
	svc := newSelectionFixture()

	_, err := svc.SaveSelection(context.Background(), 1, int64Ptr(1), int64Ptr(10))
	require.NoError(t, err)

	result, err := svc.SaveSelection(context.Background(), 1, nil, int64Ptr(10))
	require.NoError(t, err)
	assert.Nil(t, result.RegionID)
	assert.Nil(t, result.ProvinceID)
}

func TestSelectionRejectsProvinceOutsideRegion(t *testing.T) {
	svc := newSelectionFixture()

	// Verona (20) belongs to Veneto (2), not Lombardia (1)
	_, err := svc.SaveSelection(context.Background(), 1, int64Ptr(1), int64Ptr(20))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSelectionRejectsUnknownRegion(t *testing.T) {
	svc := newSelectionFixture()

	_, err := svc.SaveSelection(context.Background(), 1, int64Ptr(999), nil)
	assert.ErrorIs(t, err, apperrors.ErrRegionNotFound)
}

func TestSelectionIsPerUser(t *testing.T) {
	svc := newSelectionFixture()

	_, err := svc.SaveSelection(context.Background(), 1, int64Ptr(1), int64Ptr(10))
	require.NoError(t, err)
	_, err = svc.SaveSelection(context.Background(), 2, int64Ptr(2), int64Ptr(20))
	require.NoError(t, err)

	first, err := svc.GetSelection(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.GetSelection(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, int64(10), *first.ProvinceID)
	assert.Equal(t, int64(20), *second.ProvinceID)
}
