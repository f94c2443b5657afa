package services

import (
	"context"
	"strings"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// DefaultCountry is the country scope national banners are registered under
const DefaultCountry = "it"

// SponsorStore is the data access needed by the sponsor service
type SponsorStore interface {
	GetActiveSponsors(ctx context.Context) ([]models.SponsorAnnouncement, error)
	GetAllSponsors(ctx context.Context) ([]models.SponsorAnnouncement, error)
	UpsertSponsor(ctx context.Context, s *models.SponsorAnnouncement) (int64, error)
	MoveSponsorToHistory(ctx context.Context, sponsorID int64) error
	GetSponsorHistory(ctx context.Context) ([]models.SponsorHistoryEntry, error)
}

// SponsorService resolves and administers sponsor banners
type SponsorService interface {
	ResolveBanner(ctx context.Context, regionName, provinceName string) (*models.SponsorAnnouncement, error)
	ListSponsors(ctx context.Context) ([]models.SponsorAnnouncement, error)
	UpsertSponsor(ctx context.Context, s *models.SponsorAnnouncement) (int64, error)
	DeleteSponsor(ctx context.Context, sponsorID int64) error
	ListHistory(ctx context.Context) ([]models.SponsorHistoryEntry, error)
}

type sponsorService struct {
	store SponsorStore
}

// NewSponsorService creates a new SponsorService
func NewSponsorService(store SponsorStore) SponsorService {
	return &sponsorService{store: store}
}

func normalizeScope(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func normalizeScopePtr(value *string) string {
	if value == nil {
		return ""
	}
	return normalizeScope(*value)
}

func trimScopePtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ResolveBanner picks the banner for the viewer's current drill-down.
// Precedence: an exact province match wins over a region-wide banner,
// which wins over the national one. Matching is case- and
// whitespace-insensitive. No match returns nil without error.
func (s *sponsorService) ResolveBanner(ctx context.Context, regionName, provinceName string) (*models.SponsorAnnouncement, error) {
	sponsors, err := s.store.GetActiveSponsors(ctx)
	if err != nil {
		return nil, err
	}

	region := normalizeScope(regionName)
	province := normalizeScope(provinceName)

	var regionMatch, countryMatch *models.SponsorAnnouncement
	for i := range sponsors {
		sp := &sponsors[i]
		spCountry := normalizeScopePtr(sp.Country)
		spRegion := normalizeScopePtr(sp.Region)
		spProvince := normalizeScopePtr(sp.Province)

		if province != "" && spProvince == province {
			return sp, nil
		}
		if regionMatch == nil && region != "" && spRegion == region && spProvince == "" {
			regionMatch = sp
			continue
		}
		if countryMatch == nil && spCountry == DefaultCountry && spRegion == "" && spProvince == "" {
			countryMatch = sp
		}
	}

	if regionMatch != nil {
		return regionMatch, nil
	}
	return countryMatch, nil
}

// ListSponsors returns every registered banner for the admin panel
func (s *sponsorService) ListSponsors(ctx context.Context) ([]models.SponsorAnnouncement, error) {
	return s.store.GetAllSponsors(ctx)
}

// UpsertSponsor creates or replaces the banner for a scope. Whitespace-only
// scope fields count as unset, and a provincial banner must name its region
// so every row matches one of the three scope shapes.
func (s *sponsorService) UpsertSponsor(ctx context.Context, sp *models.SponsorAnnouncement) (int64, error) {
	sp.Text = strings.TrimSpace(sp.Text)
	if sp.Text == "" {
		return 0, apperrors.NewBadRequestError("banner text cannot be empty")
	}

	sp.Region = trimScopePtr(sp.Region)
	sp.Province = trimScopePtr(sp.Province)
	if sp.Province != nil && sp.Region == nil {
		return 0, apperrors.NewBadRequestError("a provincial banner must name its region")
	}

	id, err := s.store.UpsertSponsor(ctx, sp)
	if err != nil {
		return 0, err
	}

	logger.Info().Int64("sponsorID", id).Msg("Sponsor banner upserted")
	return id, nil
}

// DeleteSponsor retires a banner into the history table
func (s *sponsorService) DeleteSponsor(ctx context.Context, sponsorID int64) error {
	if err := s.store.MoveSponsorToHistory(ctx, sponsorID); err != nil {
		return err
	}

	logger.Info().Int64("sponsorID", sponsorID).Msg("Sponsor banner retired to history")
	return nil
}

// ListHistory returns retired banners for the admin panel
func (s *sponsorService) ListHistory(ctx context.Context) ([]models.SponsorHistoryEntry, error) {
	return s.store.GetSponsorHistory(ctx)
}
