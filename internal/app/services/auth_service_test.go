package services

import (
	"context"
	"testing"
	"time"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/app/repositories"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users   map[int64]*models.User
	nextID  int64
	invites *fakeInviteStore
	// runs between the invite read and the insert, to interleave a
	// concurrent registration
	beforeCreate func()
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if existing.Nickname == user.Nickname {
			return 0, apperrors.ErrNicknameAlreadyTaken
		}
	}
	f.nextID++
	user.ID = f.nextID
	copied := *user
	f.users[user.ID] = &copied
	return user.ID, nil
}

func (f *fakeUserStore) CreateUserWithInvite(ctx context.Context, user *models.User, inviteToken string) (int64, error) {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}

	invite, ok := f.invites.invites[inviteToken]
	if !ok || invite.Used {
		return 0, apperrors.ErrInviteNotFound
	}

	id, err := f.CreateUser(ctx, user)
	if err != nil {
		return 0, err
	}

	invite.Used = true
	invite.UsedBy = &id
	return id, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByNickname(_ context.Context, nickname string) (*models.User, error) {
	for _, user := range f.users {
		if user.Nickname == nickname {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(context.Background(), email)
	return err == nil, nil
}

func (f *fakeUserStore) NicknameExists(_ context.Context, nickname string) (bool, error) {
	_, err := f.GetUserByNickname(context.Background(), nickname)
	return err == nil, nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	if user, ok := f.users[userID]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

type fakeTokenStore struct {
	tokens map[string]*repositories.RefreshToken
	nextID int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*repositories.RefreshToken)}
}

func (f *fakeTokenStore) StoreRefreshToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	f.nextID++
	f.tokens[token] = &repositories.RefreshToken{
		ID:        f.nextID,
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeTokenStore) GetRefreshToken(_ context.Context, token string) (*repositories.RefreshToken, error) {
	rt, ok := f.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}
	return rt, nil
}

func (f *fakeTokenStore) DeleteRefreshToken(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeTokenStore) DeleteUserRefreshTokens(_ context.Context, userID int64) error {
	for token, rt := range f.tokens {
		if rt.UserID == userID {
			delete(f.tokens, token)
		}
	}
	return nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newAuthFixture(t *testing.T) (AuthService, *fakeUserStore, *fakeInviteStore, *fakeTokenStore) {
	t.Helper()

	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	invites := newFakeInviteStore()
	users.invites = invites
	svc := NewAuthService(users, tokens, invites, testJWTService())
	return svc, users, invites, tokens
}

func issueTestInvite(t *testing.T, invites *fakeInviteStore, email *string) *models.Invite {
	t.Helper()

	invite := &models.Invite{Token: "11111111-2222-3333-4444-555555555555", Email: email, InvitedBy: 1}
	_, err := invites.CreateInvite(context.Background(), invite)
	require.NoError(t, err)
	return invite
}

func TestRegisterCreatesPendingProfile(t *testing.T) {
	svc, users, invites, _ := newAuthFixture(t)
	invite := issueTestInvite(t, invites, nil)

	user, pair, err := svc.Register(context.Background(), invite.Token, "anna@example.com", "password123", "anna")
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.Equal(t, models.RolePending, user.RoleType)
	assert.Equal(t, &invite.InvitedBy, user.InvitedBy)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	stored, err := users.GetUserByEmail(context.Background(), "anna@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)

	consumed, err := invites.GetInviteByToken(context.Background(), invite.Token)
	require.NoError(t, err)
	assert.True(t, consumed.Used)
	require.NotNil(t, consumed.UsedBy)
	assert.Equal(t, user.ID, *consumed.UsedBy)
}

func TestRegisterRejectsUsedToken(t *testing.T) {
	svc, _, invites, _ := newAuthFixture(t)
	invite := issueTestInvite(t, invites, nil)

	_, _, err := svc.Register(context.Background(), invite.Token, "anna@example.com", "password123", "anna")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), invite.Token, "luca@example.com", "password123", "luca")
	assert.ErrorIs(t, err, apperrors.ErrInviteNotFound)
}

func TestRegisterRacedTokenLeavesNoProfile(t *testing.T) {
	svc, users, invites, _ := newAuthFixture(t)
	invite := issueTestInvite(t, invites, nil)

	// A concurrent registration spends the token between the invite
	// read and the insert. The losing registration must not leave a
	// profile behind.
	users.beforeCreate = func() {
		rival := int64(99)
		stored := invites.invites[invite.Token]
		stored.Used = true
		stored.UsedBy = &rival
	}

	_, _, err := svc.Register(context.Background(), invite.Token, "luca@example.com", "password123", "luca")
	assert.ErrorIs(t, err, apperrors.ErrInviteNotFound)

	_, err = users.GetUserByEmail(context.Background(), "luca@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, _, err = svc.Login(context.Background(), "luca@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegisterRejectsTakenNickname(t *testing.T) {
	svc, _, invites, _ := newAuthFixture(t)

	first := issueTestInvite(t, invites, nil)
	_, _, err := svc.Register(context.Background(), first.Token, "anna@example.com", "password123", "anna")
	require.NoError(t, err)

	second := &models.Invite{Token: "99999999-8888-7777-6666-555555555555", InvitedBy: 1}
	_, err = invites.CreateInvite(context.Background(), second)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), second.Token, "other@example.com", "password123", "anna")
	assert.ErrorIs(t, err, apperrors.ErrNicknameAlreadyTaken)

	// The failed attempt must not burn the invite
	invite, err := invites.GetInviteByToken(context.Background(), second.Token)
	require.NoError(t, err)
	assert.False(t, invite.Used)
}

func TestRegisterEnforcesEmailBinding(t *testing.T) {
	svc, _, invites, _ := newAuthFixture(t)

	bound := "anna@example.com"
	invite := issueTestInvite(t, invites, &bound)

	_, _, err := svc.Register(context.Background(), invite.Token, "luca@example.com", "password123", "luca")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, _, err = svc.Register(context.Background(), invite.Token, "Anna@Example.com", "password123", "anna")
	assert.NoError(t, err)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _, invites, _ := newAuthFixture(t)
	invite := issueTestInvite(t, invites, nil)

	_, _, err := svc.Register(context.Background(), invite.Token, "bad-email", "password123", "anna")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, _, err = svc.Register(context.Background(), invite.Token, "anna@example.com", "short", "anna")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, _, err = svc.Register(context.Background(), invite.Token, "anna@example.com", "password123", "a!")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, invites, _ := newAuthFixture(t)
	invite := issueTestInvite(t, invites, nil)

	_, _, err := svc.Register(context.Background(), invite.Token, "anna@example.com", "password123", "anna")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "anna@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, users, invites, _ := newAuthFixture(t)
	invite := issueTestInvite(t, invites, nil)

	user, _, err := svc.Register(context.Background(), invite.Token, "anna@example.com", "password123", "anna")
	require.NoError(t, err)

	users.users[user.ID].IsActive = false

	_, _, err = svc.Login(context.Background(), "anna@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, _, invites, tokens := newAuthFixture(t)
	invite := issueTestInvite(t, invites, nil)

	_, pair, err := svc.Register(context.Background(), invite.Token, "anna@example.com", "password123", "anna")
	require.NoError(t, err)

	_, fresh, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, fresh.RefreshToken)

	// The old refresh token is gone
	_, _, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, ok := tokens.tokens[fresh.RefreshToken]
	assert.True(t, ok)
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	svc, _, invites, tokens := newAuthFixture(t)
	invite := issueTestInvite(t, invites, nil)

	user, pair, err := svc.Register(context.Background(), invite.Token, "anna@example.com", "password123", "anna")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), user.ID))
	assert.Empty(t, tokens.tokens)

	_, _, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}
