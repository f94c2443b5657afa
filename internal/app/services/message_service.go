package services

import (
	"context"
	"errors"
	"strings"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
	"github.com/postigiusti/bacheca/internal/pkg/validation"
)

// MessageStore is the data access needed by the message service
type MessageStore interface {
	CreateMessage(ctx context.Context, message *models.Message) (int64, error)
	GetMessagesForUser(ctx context.Context, userID int64) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int, error)
}

// MessageNotifier pushes new-message events to connected recipients
type MessageNotifier interface {
	NotifyNewMessage(recipientID int64, message *models.Message)
}

// MessageService handles member-to-member direct messages
type MessageService interface {
	SendMessage(ctx context.Context, sender *models.User, toNickname, content string) (*models.Message, error)
	GetInbox(ctx context.Context, userID int64) ([]models.Message, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
}

// userLookup is the user resolution needed to address messages
type userLookup interface {
	GetUserByNickname(ctx context.Context, nickname string) (*models.User, error)
}

type messageService struct {
	store    MessageStore
	users    userLookup
	notifier MessageNotifier
}

// NewMessageService creates a new MessageService. notifier may be nil when
// realtime delivery is disabled.
func NewMessageService(store MessageStore, users userLookup, notifier MessageNotifier) MessageService {
	return &messageService{store: store, users: users, notifier: notifier}
}

// SendMessage delivers a direct message addressed by nickname
func (s *messageService) SendMessage(ctx context.Context, sender *models.User, toNickname, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewBadRequestError("message content cannot be empty")
	}
	if len(content) > validation.ContentMaxLength {
		return nil, apperrors.NewBadRequestError("message content too long")
	}

	recipient, err := s.users.GetUserByNickname(ctx, strings.TrimSpace(toNickname))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrRecipientNotFound
		}
		return nil, err
	}
	if recipient.ID == sender.ID {
		return nil, apperrors.NewBadRequestError("cannot message yourself")
	}

	message := &models.Message{
		SenderID:          sender.ID,
		RecipientID:       recipient.ID,
		SenderNickname:    sender.Nickname,
		RecipientNickname: recipient.Nickname,
		Content:           content,
	}

	if _, err := s.store.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(recipient.ID, message)
	}

	logger.Info().Int64("messageID", message.ID).Int64("recipientID", recipient.ID).Msg("Direct message sent")
	return message, nil
}

// GetInbox returns all of a member's messages and marks the incoming
// unread ones as read, mirroring the act of opening the mailbox.
func (s *messageService) GetInbox(ctx context.Context, userID int64) ([]models.Message, error) {
	messages, err := s.store.GetMessagesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.MarkMessagesRead(ctx, userID); err != nil {
		logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to mark messages read")
	}

	return messages, nil
}

// CountUnread counts a member's unread messages
func (s *messageService) CountUnread(ctx context.Context, userID int64) (int, error) {
	return s.store.CountUnread(ctx, userID)
}
