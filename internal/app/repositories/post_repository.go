package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// PostRepository handles bulletin post database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreatePost inserts a new post and returns its ID
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	sql, args, err := r.sb.Insert("posts").
		Columns("province_id", "author_id", "content", "category").
		Values(post.ProvinceID, post.AuthorID, post.Content, post.Category).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build create post query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("provinceID", post.ProvinceID).Msg("Error executing create post query")
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return post.ID, nil
}

// GetPostByID retrieves a post with its author nickname
func (r *PostRepository) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	sql, args, err := r.sb.Select(
		"p.id", "p.province_id", "p.author_id", "u.nickname",
		"p.content", "p.category", "p.closed", "p.created_at").
		From("posts p").
		Join("users u ON u.id = p.author_id").
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}

	post := &models.Post{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&post.ID,
		&post.ProvinceID,
		&post.AuthorID,
		&post.AuthorNickname,
		&post.Content,
		&post.Category,
		&post.Closed,
		&post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", id).Msg("Error scanning post row")
		return nil, fmt.Errorf("error getting post: %w", err)
	}

	return post, nil
}

// GetPostsByProvince retrieves the newest posts of a province, capped at limit
func (r *PostRepository) GetPostsByProvince(ctx context.Context, provinceID int64, limit uint64) ([]models.Post, error) {
	sql, args, err := r.sb.Select(
		"p.id", "p.province_id", "p.author_id", "u.nickname",
		"p.content", "p.category", "p.closed", "p.created_at").
		From("posts p").
		Join("users u ON u.id = p.author_id").
		Where(squirrel.Eq{"p.province_id": provinceID}).
		OrderBy("p.created_at DESC").
		Limit(limit).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("provinceID", provinceID).Msg("Error executing get posts query")
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		err := rows.Scan(
			&post.ID,
			&post.ProvinceID,
			&post.AuthorID,
			&post.AuthorNickname,
			&post.Content,
			&post.Category,
			&post.Closed,
			&post.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// ClosePost marks a post closed. The author guard lives in the WHERE clause
// so a stale read cannot race the update.
func (r *PostRepository) ClosePost(ctx context.Context, postID, authorID int64) error {
	sql, args, err := r.sb.Update("posts").
		Set("closed", true).
		Set("closed_at", time.Now()).
		Where(squirrel.Eq{"id": postID, "author_id": authorID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build close post query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error executing close post query")
		return fmt.Errorf("error closing post: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPermissionDenied
	}

	return nil
}
