package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/dberrors"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// CommentRepository handles comment and reply database operations
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateComment inserts a new comment and returns its ID
func (r *CommentRepository) CreateComment(ctx context.Context, comment *models.Comment) (int64, error) {
	sql, args, err := r.sb.Insert("comments").
		Columns("post_id", "author_id", "content").
		Values(comment.PostID, comment.AuthorID, comment.Content).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create comment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("postID", comment.PostID).Msg("Error executing create comment query")
		return 0, fmt.Errorf("error creating comment: %w", err)
	}

	return comment.ID, nil
}

// GetCommentByID retrieves a single comment
func (r *CommentRepository) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.post_id", "c.author_id", "u.nickname", "c.content", "c.created_at").
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get comment query: %w", err)
	}

	comment := &models.Comment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.AuthorNickname,
		&comment.Content,
		&comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		logger.Error().Err(err).Int64("commentID", id).Msg("Error scanning comment row")
		return nil, fmt.Errorf("error getting comment: %w", err)
	}

	return comment, nil
}

// GetCommentsByPostID retrieves a post's comments oldest first
func (r *CommentRepository) GetCommentsByPostID(ctx context.Context, postID int64) ([]models.Comment, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.post_id", "c.author_id", "u.nickname", "c.content", "c.created_at").
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where(squirrel.Eq{"c.post_id": postID}).
		OrderBy("c.created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error executing get comments query")
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.AuthorNickname,
			&comment.Content,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// CreateReply inserts the reply for a comment. The UNIQUE constraint on
// comment_id guarantees at most one reply per comment.
func (r *CommentRepository) CreateReply(ctx context.Context, reply *models.Reply) (int64, error) {
	sql, args, err := r.sb.Insert("replies").
		Columns("comment_id", "author_id", "content").
		Values(reply.CommentID, reply.AuthorID, reply.Content).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create reply query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&reply.ID, &reply.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "replies_comment_id_key") {
			return 0, apperrors.ErrReplyExists
		}
		logger.Error().Err(err).Int64("commentID", reply.CommentID).Msg("Error executing create reply query")
		return 0, fmt.Errorf("error creating reply: %w", err)
	}

	return reply.ID, nil
}

// GetRepliesByCommentIDs retrieves replies for a batch of comments
func (r *CommentRepository) GetRepliesByCommentIDs(ctx context.Context, commentIDs []int64) ([]models.Reply, error) {
	if len(commentIDs) == 0 {
		return []models.Reply{}, nil
	}

	sql, args, err := r.sb.Select(
		"rp.id", "rp.comment_id", "rp.author_id", "u.nickname", "rp.content", "rp.created_at").
		From("replies rp").
		Join("users u ON u.id = rp.author_id").
		Where(squirrel.Eq{"rp.comment_id": commentIDs}).
		OrderBy("rp.created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get replies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get replies query")
		return nil, fmt.Errorf("error querying replies: %w", err)
	}
	defer rows.Close()

	replies := []models.Reply{}
	for rows.Next() {
		var reply models.Reply
		err := rows.Scan(
			&reply.ID,
			&reply.CommentID,
			&reply.AuthorID,
			&reply.AuthorNickname,
			&reply.Content,
			&reply.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning reply row: %w", err)
		}
		replies = append(replies, reply)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reply rows: %w", err)
	}

	return replies, nil
}
