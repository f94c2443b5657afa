package services

import (
	"context"
	"testing"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSponsorStore struct {
	sponsors []models.SponsorAnnouncement
	history  []models.SponsorHistoryEntry
	nextID   int64
}

func (f *fakeSponsorStore) GetActiveSponsors(_ context.Context) ([]models.SponsorAnnouncement, error) {
	active := []models.SponsorAnnouncement{}
	for _, s := range f.sponsors {
		if s.Active {
			active = append(active, s)
		}
	}
	return active, nil
}

func (f *fakeSponsorStore) GetAllSponsors(_ context.Context) ([]models.SponsorAnnouncement, error) {
	return f.sponsors, nil
}

func (f *fakeSponsorStore) UpsertSponsor(_ context.Context, s *models.SponsorAnnouncement) (int64, error) {
	f.nextID++
	s.ID = f.nextID
	f.sponsors = append(f.sponsors, *s)
	return s.ID, nil
}

func (f *fakeSponsorStore) MoveSponsorToHistory(_ context.Context, sponsorID int64) error {
	for i, s := range f.sponsors {
		if s.ID == sponsorID {
			f.history = append(f.history, models.SponsorHistoryEntry{SponsorAnnouncement: s})
			f.sponsors = append(f.sponsors[:i], f.sponsors[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeSponsorStore) GetSponsorHistory(_ context.Context) ([]models.SponsorHistoryEntry, error) {
	return f.history, nil
}

func strPtr(s string) *string { return &s }

func newSponsorFixture() *fakeSponsorStore {
	return &fakeSponsorStore{
		sponsors: []models.SponsorAnnouncement{
			{ID: 1, Country: strPtr("it"), Text: "national", Active: true},
			{ID: 2, Country: strPtr("it"), Region: strPtr("lombardia"), Text: "regional", Active: true},
			{ID: 3, Country: strPtr("it"), Region: strPtr("lombardia"), Province: strPtr("milano"), Text: "provincial", Active: true},
		},
		nextID: 3,
	}
}

func TestResolveBannerProvinceWins(t *testing.T) {
	svc := NewSponsorService(newSponsorFixture())

	banner, err := svc.ResolveBanner(context.Background(), "Lombardia", "Milano")
	require.NoError(t, err)
	require.NotNil(t, banner)
	assert.Equal(t, "provincial", banner.Text)
}

func TestResolveBannerFallsBackToRegion(t *testing.T) {
	svc := NewSponsorService(newSponsorFixture())

	banner, err := svc.ResolveBanner(context.Background(), "Lombardia", "Bergamo")
	require.NoError(t, err)
	require.NotNil(t, banner)
	assert.Equal(t, "regional", banner.Text)
}

func TestResolveBannerFallsBackToCountry(t *testing.T) {
	svc := NewSponsorService(newSponsorFixture())

	banner, err := svc.ResolveBanner(context.Background(), "Veneto", "Verona")
	require.NoError(t, err)
	require.NotNil(t, banner)
	assert.Equal(t, "national", banner.Text)

	banner, err = svc.ResolveBanner(context.Background(), "", "")
	require.NoError(t, err)
	require.NotNil(t, banner)
	assert.Equal(t, "national", banner.Text)
}

func TestResolveBannerNormalizesNames(t *testing.T) {
	svc := NewSponsorService(newSponsorFixture())

	banner, err := svc.ResolveBanner(context.Background(), "  LOMBARDIA  ", " MiLaNo ")
	require.NoError(t, err)
	require.NotNil(t, banner)
	assert.Equal(t, "provincial", banner.Text)
}

func TestResolveBannerNoMatch(t *testing.T) {
	store := &fakeSponsorStore{
		sponsors: []models.SponsorAnnouncement{
			{ID: 1, Country: strPtr("it"), Region: strPtr("lazio"), Text: "regional", Active: true},
		},
	}
	svc := NewSponsorService(store)

	banner, err := svc.ResolveBanner(context.Background(), "Veneto", "")
	require.NoError(t, err)
	assert.Nil(t, banner)
}

func TestResolveBannerIgnoresInactive(t *testing.T) {
	store := newSponsorFixture()
	for i := range store.sponsors {
		if store.sponsors[i].Text == "provincial" {
			store.sponsors[i].Active = false
		}
	}
	svc := NewSponsorService(store)

	banner, err := svc.ResolveBanner(context.Background(), "Lombardia", "Milano")
	require.NoError(t, err)
	require.NotNil(t, banner)
	assert.Equal(t, "regional", banner.Text)
}

func TestUpsertSponsorRejectsBlankText(t *testing.T) {
	svc := NewSponsorService(newSponsorFixture())

	_, err := svc.UpsertSponsor(context.Background(), &models.SponsorAnnouncement{
		Country: strPtr("it"),
		Text:    "   ",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestUpsertSponsorScopeShape(t *testing.T) {
	store := newSponsorFixture()
	svc := NewSponsorService(store)

	// A province without its region matches no scope shape
	_, err := svc.UpsertSponsor(context.Background(), &models.SponsorAnnouncement{
		Country:  strPtr("it"),
		Province: strPtr("torino"),
		Text:     "orphan province",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	// A whitespace-only region counts as unset
	_, err = svc.UpsertSponsor(context.Background(), &models.SponsorAnnouncement{
		Country:  strPtr("it"),
		Region:   strPtr("   "),
		Province: strPtr("torino"),
		Text:     "orphan province",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	id, err := svc.UpsertSponsor(context.Background(), &models.SponsorAnnouncement{
		Country:  strPtr("it"),
		Region:   strPtr("piemonte"),
		Province: strPtr(" torino "),
		Text:     "provincial torino",
	})
	require.NoError(t, err)

	stored := store.sponsors[len(store.sponsors)-1]
	assert.Equal(t, id, stored.ID)
	require.NotNil(t, stored.Province)
	assert.Equal(t, "torino", *stored.Province)
}

func TestDeleteSponsorMovesToHistory(t *testing.T) {
	store := newSponsorFixture()
	svc := NewSponsorService(store)

	require.NoError(t, svc.DeleteSponsor(context.Background(), 3))

	sponsors, err := svc.ListSponsors(context.Background())
	require.NoError(t, err)
	assert.Len(t, sponsors, 2)

	history, err := svc.ListHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "provincial", history[0].Text)
}
