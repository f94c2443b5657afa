package services

import (
	"context"
	"testing"
	"time"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInviteStore struct {
	invites map[string]*models.Invite
	nextID  int64
}

func newFakeInviteStore() *fakeInviteStore {
	return &fakeInviteStore{invites: make(map[string]*models.Invite)}
}

func (f *fakeInviteStore) CreateInvite(_ context.Context, invite *models.Invite) (int64, error) {
	f.nextID++
	invite.ID = f.nextID
	invite.CreatedAt = time.Now()
	copied := *invite
	f.invites[invite.Token] = &copied
	return invite.ID, nil
}

func (f *fakeInviteStore) GetInviteByToken(_ context.Context, token string) (*models.Invite, error) {
	invite, ok := f.invites[token]
	if !ok {
		return nil, apperrors.ErrInviteNotFound
	}
	copied := *invite
	return &copied, nil
}

func (f *fakeInviteStore) ConsumeInvite(_ context.Context, token string, usedBy int64) error {
	invite, ok := f.invites[token]
	if !ok || invite.Used {
		return apperrors.ErrInviteNotFound
	}
	invite.Used = true
	invite.UsedBy = &usedBy
	return nil
}

func (f *fakeInviteStore) ApproveInvite(_ context.Context, inviteID int64) error {
	for _, invite := range f.invites {
		if invite.ID == inviteID {
			invite.Approved = true
			return nil
		}
	}
	return apperrors.ErrInviteNotFound
}

func (f *fakeInviteStore) CountPendingByInviter(_ context.Context, inviterID int64) (int, error) {
	count := 0
	for _, invite := range f.invites {
		if invite.InvitedBy == inviterID && invite.Pending() {
			count++
		}
	}
	return count, nil
}

func (f *fakeInviteStore) HasOpenInviteForEmail(_ context.Context, email string) (bool, error) {
	for _, invite := range f.invites {
		if invite.Email != nil && *invite.Email == email && !invite.Used {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInviteStore) GetInvitesByInviter(_ context.Context, inviterID int64) ([]models.Invite, error) {
	result := []models.Invite{}
	for _, invite := range f.invites {
		if invite.InvitedBy == inviterID {
			result = append(result, *invite)
		}
	}
	return result, nil
}

func (f *fakeInviteStore) GetAllInvites(_ context.Context) ([]models.Invite, error) {
	result := []models.Invite{}
	for _, invite := range f.invites {
		result = append(result, *invite)
	}
	return result, nil
}

type fakeMailer struct {
	inviteEmails   []string
	approvalEmails []string
}

func (f *fakeMailer) SendInviteEmail(toEmail, _, _ string) error {
	f.inviteEmails = append(f.inviteEmails, toEmail)
	return nil
}

func (f *fakeMailer) SendApprovalEmail(toEmail, _ string) error {
	f.approvalEmails = append(f.approvalEmails, toEmail)
	return nil
}

func testInviter() *models.User {
	return &models.User{ID: 1, Email: "mario@example.com", Nickname: "mario", RoleType: models.RoleMember}
}

func TestCreateInviteIssuesUniqueTokens(t *testing.T) {
	store := newFakeInviteStore()
	svc := NewInviteService(store, &fakeMailer{})

	first, err := svc.CreateInvite(context.Background(), testInviter(), nil)
	require.NoError(t, err)
	second, err := svc.CreateInvite(context.Background(), testInviter(), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, first.Token)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestCreateInviteQuotaExhausted(t *testing.T) {
	store := newFakeInviteStore()
	svc := NewInviteService(store, &fakeMailer{})

	for i := 0; i < InviteQuota; i++ {
		_, err := svc.CreateInvite(context.Background(), testInviter(), nil)
		require.NoError(t, err)
	}

	_, err := svc.CreateInvite(context.Background(), testInviter(), nil)
	assert.ErrorIs(t, err, apperrors.ErrInviteQuotaExceeded)
}

func TestCreateInviteQuotaFreesAfterApproval(t *testing.T) {
	store := newFakeInviteStore()
	svc := NewInviteService(store, &fakeMailer{})

	issued := make([]*models.Invite, 0, InviteQuota)
	for i := 0; i < InviteQuota; i++ {
		invite, err := svc.CreateInvite(context.Background(), testInviter(), nil)
		require.NoError(t, err)
		issued = append(issued, invite)
	}

	// Used but unapproved still counts against the quota
	require.NoError(t, store.ConsumeInvite(context.Background(), issued[0].Token, 42))
	_, err := svc.CreateInvite(context.Background(), testInviter(), nil)
	assert.ErrorIs(t, err, apperrors.ErrInviteQuotaExceeded)

	// Used and approved releases the slot
	require.NoError(t, svc.Approve(context.Background(), issued[0].ID))
	_, err = svc.CreateInvite(context.Background(), testInviter(), nil)
	assert.NoError(t, err)
}

func TestApproveUnknownInvite(t *testing.T) {
	svc := NewInviteService(newFakeInviteStore(), &fakeMailer{})

	err := svc.Approve(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrInviteNotFound)
}

func TestCreateInviteRejectsDuplicateOpenEmail(t *testing.T) {
	store := newFakeInviteStore()
	mailer := &fakeMailer{}
	svc := NewInviteService(store, mailer)

	email := "anna@example.com"
	_, err := svc.CreateInvite(context.Background(), testInviter(), &email)
	require.NoError(t, err)
	assert.Equal(t, []string{email}, mailer.inviteEmails)

	_, err = svc.CreateInvite(context.Background(), testInviter(), &email)
	assert.ErrorIs(t, err, apperrors.ErrInviteEmailOpen)
}

func TestCreateInviteNormalizesEmail(t *testing.T) {
	store := newFakeInviteStore()
	svc := NewInviteService(store, &fakeMailer{})

	email := "  Anna@Example.COM "
	invite, err := svc.CreateInvite(context.Background(), testInviter(), &email)
	require.NoError(t, err)
	require.NotNil(t, invite.Email)
	assert.Equal(t, "anna@example.com", *invite.Email)
}

func TestCreateInviteRejectsBadEmail(t *testing.T) {
	svc := NewInviteService(newFakeInviteStore(), &fakeMailer{})

	email := "not-an-email"
	_, err := svc.CreateInvite(context.Background(), testInviter(), &email)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestVerifyTokenSingleUse(t *testing.T) {
	store := newFakeInviteStore()
	svc := NewInviteService(store, &fakeMailer{})

	invite, err := svc.CreateInvite(context.Background(), testInviter(), nil)
	require.NoError(t, err)

	verified, err := svc.VerifyToken(context.Background(), invite.Token)
	require.NoError(t, err)
	assert.Equal(t, invite.ID, verified.ID)

	require.NoError(t, store.ConsumeInvite(context.Background(), invite.Token, 42))

	_, err = svc.VerifyToken(context.Background(), invite.Token)
	assert.ErrorIs(t, err, apperrors.ErrInviteNotFound)
}

func TestConsumeInviteIsAtomicSingleUse(t *testing.T) {
	store := newFakeInviteStore()
	svc := NewInviteService(store, &fakeMailer{})

	invite, err := svc.CreateInvite(context.Background(), testInviter(), nil)
	require.NoError(t, err)

	require.NoError(t, store.ConsumeInvite(context.Background(), invite.Token, 42))
	err = store.ConsumeInvite(context.Background(), invite.Token, 43)
	assert.ErrorIs(t, err, apperrors.ErrInviteNotFound)
}
