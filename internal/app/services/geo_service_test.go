package services

import (
	"context"
	"testing"

	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoRegionsCached(t *testing.T) {
	store := newFakeGeoStore()
	svc := NewGeoService(store)

	first, err := svc.GetRegions(context.Background())
	require.NoError(t, err)
	second, err := svc.GetRegions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.regionCalls)
}

func TestGeoProvincesCachedPerRegion(t *testing.T) {
	store := newFakeGeoStore()
	svc := NewGeoService(store)

	_, err := svc.GetProvinces(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.GetProvinces(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, store.provinceCalls)

	// A different region triggers its own load
	_, err = svc.GetProvinces(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, store.provinceCalls)
}

func TestGeoUnknownRegion(t *testing.T) {
	svc := NewGeoService(newFakeGeoStore())

	_, err := svc.GetProvinces(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrRegionNotFound)
}

func TestGeoProvinceLookupAfterListing(t *testing.T) {
	store := newFakeGeoStore()
	svc := NewGeoService(store)

	provinces, err := svc.GetProvinces(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, provinces)

	province, err := svc.GetProvince(context.Background(), provinces[0].ID)
	require.NoError(t, err)
	assert.Equal(t, provinces[0].Name, province.Name)
}
