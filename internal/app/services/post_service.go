package services

import (
	"context"
	"strings"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
	"github.com/postigiusti/bacheca/internal/pkg/validation"
)

// MaxBoardPosts caps how many posts a province board shows
const MaxBoardPosts = 5

// PostStore is the data access needed by the post service
type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) (int64, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	GetPostsByProvince(ctx context.Context, provinceID int64, limit uint64) ([]models.Post, error)
	ClosePost(ctx context.Context, postID, authorID int64) error
}

// PostService manages province bulletin boards
type PostService interface {
	GetBoard(ctx context.Context, provinceID int64) ([]models.Post, error)
	CreatePost(ctx context.Context, provinceID, authorID int64, content string, category models.PostCategory) (*models.Post, error)
	ClosePost(ctx context.Context, postID, userID int64) error
}

type postService struct {
	store PostStore
	geo   GeoService
}

// NewPostService creates a new PostService
func NewPostService(store PostStore, geo GeoService) PostService {
	return &postService{store: store, geo: geo}
}

// GetBoard returns a province's board: the newest posts, capped at MaxBoardPosts
func (s *postService) GetBoard(ctx context.Context, provinceID int64) ([]models.Post, error) {
	if _, err := s.geo.GetProvince(ctx, provinceID); err != nil {
		return nil, err
	}

	return s.store.GetPostsByProvince(ctx, provinceID, MaxBoardPosts)
}

// CreatePost publishes a post on a province board
func (s *postService) CreatePost(ctx context.Context, provinceID, authorID int64, content string, category models.PostCategory) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewBadRequestError("post content cannot be empty")
	}
	if len(content) > validation.ContentMaxLength {
		return nil, apperrors.NewBadRequestError("post content too long")
	}
	if !category.IsValid() {
		return nil, apperrors.ErrInvalidCategory
	}

	if _, err := s.geo.GetProvince(ctx, provinceID); err != nil {
		return nil, err
	}

	post := &models.Post{
		ProvinceID: provinceID,
		AuthorID:   authorID,
		Content:    content,
		Category:   category,
	}

	if _, err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	logger.Info().Int64("postID", post.ID).Int64("provinceID", provinceID).Msg("Post published")
	return post, nil
}

// ClosePost marks a post closed. Only the post's author may close it; the
// post stays visible but accepts no further comments or replies.
func (s *postService) ClosePost(ctx context.Context, postID, userID int64) error {
	post, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		return apperrors.ErrPermissionDenied
	}
	if post.Closed {
		// Closing twice is harmless.
		return nil
	}

	if err := s.store.ClosePost(ctx, postID, userID); err != nil {
		return err
	}

	logger.Info().Int64("postID", postID).Msg("Post closed by author")
	return nil
}
