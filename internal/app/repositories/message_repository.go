package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// MessageRepository handles direct message database operations
type MessageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateMessage inserts a direct message
func (r *MessageRepository) CreateMessage(ctx context.Context, message *models.Message) (int64, error) {
	sql, args, err := r.sb.Insert("messages").
		Columns("sender_id", "recipient_id", "content").
		Values(message.SenderID, message.RecipientID, message.Content).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create message query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("recipientID", message.RecipientID).Msg("Error executing create message query")
		return 0, fmt.Errorf("error creating message: %w", err)
	}

	return message.ID, nil
}

// GetMessagesForUser retrieves every message sent or received by a user,
// newest first, with both participant nicknames joined in.
func (r *MessageRepository) GetMessagesForUser(ctx context.Context, userID int64) ([]models.Message, error) {
	sql, args, err := r.sb.Select(
		"m.id", "m.sender_id", "m.recipient_id",
		"s.nickname AS sender_nickname", "rc.nickname AS recipient_nickname",
		"m.content", "m.read", "m.created_at").
		From("messages m").
		Join("users s ON s.id = m.sender_id").
		Join("users rc ON rc.id = m.recipient_id").
		Where(squirrel.Or{
			squirrel.Eq{"m.sender_id": userID},
			squirrel.Eq{"m.recipient_id": userID},
		}).
		OrderBy("m.created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get messages query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing get messages query")
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		err := rows.Scan(
			&m.ID,
			&m.SenderID,
			&m.RecipientID,
			&m.SenderNickname,
			&m.RecipientNickname,
			&m.Content,
			&m.Read,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}

// MarkMessagesRead marks all unread messages addressed to the user as read
func (r *MessageRepository) MarkMessagesRead(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("messages").
		Set("read", true).
		Where(squirrel.Eq{"recipient_id": userID, "read": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build mark messages read query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error marking messages read")
		return fmt.Errorf("error marking messages read: %w", err)
	}

	return nil
}

// CountUnread counts unread messages addressed to the user
func (r *MessageRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("messages").
		Where(squirrel.Eq{"recipient_id": userID, "read": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build count unread query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error counting unread messages")
		return 0, fmt.Errorf("error counting unread messages: %w", err)
	}

	return count, nil
}
