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

type fakeMessageStore struct {
	messages []*models.Message
	nextID   int64
}

func (f *fakeMessageStore) CreateMessage(_ context.Context, message *models.Message) (int64, error) {
	f.nextID++
	message.ID = f.nextID
	message.CreatedAt = time.Now()
	copied := *message
	f.messages = append(f.messages, &copied)
	return message.ID, nil
}

func (f *fakeMessageStore) GetMessagesForUser(_ context.Context, userID int64) ([]models.Message, error) {
	result := []models.Message{}
	for _, m := range f.messages {
		if m.SenderID == userID || m.RecipientID == userID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeMessageStore) MarkMessagesRead(_ context.Context, userID int64) error {
	for _, m := range f.messages {
		if m.RecipientID == userID {
			m.Read = true
		}
	}
	return nil
}

func (f *fakeMessageStore) CountUnread(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, m := range f.messages {
		if m.RecipientID == userID && !m.Read {
			count++
		}
	}
	return count, nil
}

type recordingNotifier struct {
	notified []int64
}

func (r *recordingNotifier) NotifyNewMessage(recipientID int64, _ *models.Message) {
	r.notified = append(r.notified, recipientID)
}

func newMessageFixture(t *testing.T) (MessageService, *fakeMessageStore, *recordingNotifier, *models.User, *models.User) {
	t.Helper()

	users := newFakeUserStore()
	sender := &models.User{Email: "mario@example.com", Nickname: "mario", RoleType: models.RoleMember, IsActive: true}
	recipient := &models.User{Email: "anna@example.com", Nickname: "anna", RoleType: models.RoleMember, IsActive: true}
	for _, u := range []*models.User{sender, recipient} {
		_, err := users.CreateUser(context.Background(), u)
		require.NoError(t, err)
	}

	store := &fakeMessageStore{}
	notifier := &recordingNotifier{}
	return NewMessageService(store, users, notifier), store, notifier, sender, recipient
}

func TestSendMessageDeliversAndNotifies(t *testing.T) {
	svc, _, notifier, sender, recipient := newMessageFixture(t)

	message, err := svc.SendMessage(context.Background(), sender, "anna", "  ciao!  ")
	require.NoError(t, err)

	assert.Equal(t, "ciao!", message.Content)
	assert.Equal(t, recipient.ID, message.RecipientID)
	assert.Equal(t, "anna", message.RecipientNickname)
	assert.Equal(t, []int64{recipient.ID}, notifier.notified)
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	svc, _, _, sender, _ := newMessageFixture(t)

	_, err := svc.SendMessage(context.Background(), sender, "ghost", "ciao")
	assert.ErrorIs(t, err, apperrors.ErrRecipientNotFound)
}

func TestSendMessageToSelfRejected(t *testing.T) {
	svc, _, _, sender, _ := newMessageFixture(t)

	_, err := svc.SendMessage(context.Background(), sender, "mario", "ciao me")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGetInboxMarksRead(t *testing.T) {
	svc, _, _, sender, recipient := newMessageFixture(t)

	_, err := svc.SendMessage(context.Background(), sender, "anna", "primo")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), sender, "anna", "secondo")
	require.NoError(t, err)

	unread, err := svc.CountUnread(context.Background(), recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	messages, err := svc.GetInbox(context.Background(), recipient.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	unread, err = svc.CountUnread(context.Background(), recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unread)
}

func TestGetInboxIncludesSentMessages(t *testing.T) {
	svc, _, _, sender, _ := newMessageFixture(t)

	_, err := svc.SendMessage(context.Background(), sender, "anna", "ciao")
	require.NoError(t, err)

	messages, err := svc.GetInbox(context.Background(), sender.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}
