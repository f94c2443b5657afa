package services

import (
	"context"
	"strings"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
	"github.com/postigiusti/bacheca/internal/pkg/validation"
)

// CommentStore is the data access needed by the comment service
type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) (int64, error)
	GetCommentByID(ctx context.Context, id int64) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID int64) ([]models.Comment, error)
	CreateReply(ctx context.Context, reply *models.Reply) (int64, error)
	GetRepliesByCommentIDs(ctx context.Context, commentIDs []int64) ([]models.Reply, error)
}

// CommentService manages comments and the post author's replies
type CommentService interface {
	GetComments(ctx context.Context, postID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, postID, authorID int64, content string) (*models.Comment, error)
	CreateReply(ctx context.Context, commentID, userID int64, content string) (*models.Reply, error)
	GetReplies(ctx context.Context, commentIDs []int64) ([]models.Reply, error)
}

type commentService struct {
	store CommentStore
	posts PostStore
}

// NewCommentService creates a new CommentService
func NewCommentService(store CommentStore, posts PostStore) CommentService {
	return &commentService{store: store, posts: posts}
}

// GetComments returns a post's comments in conversation order, oldest first
func (s *commentService) GetComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	return s.store.GetCommentsByPostID(ctx, postID)
}

// CreateComment adds a comment to an open post
func (s *commentService) CreateComment(ctx context.Context, postID, authorID int64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewBadRequestError("comment content cannot be empty")
	}
	if len(content) > validation.ContentMaxLength {
		return nil, apperrors.NewBadRequestError("comment content too long")
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Closed {
		return nil, apperrors.ErrPostClosed
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}

	if _, err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	logger.Info().Int64("commentID", comment.ID).Int64("postID", postID).Msg("Comment added")
	return comment, nil
}

// CreateReply adds the post author's single reply to a comment. Only the
// author of the commented post may reply, the post must still be open,
// and a comment carries at most one reply.
func (s *commentService) CreateReply(ctx context.Context, commentID, userID int64, content string) (*models.Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewBadRequestError("reply content cannot be empty")
	}
	if len(content) > validation.ContentMaxLength {
		return nil, apperrors.NewBadRequestError("reply content too long")
	}

	comment, err := s.store.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetPostByID(ctx, comment.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	if post.Closed {
		return nil, apperrors.ErrPostClosed
	}

	reply := &models.Reply{
		CommentID: commentID,
		AuthorID:  userID,
		Content:   content,
	}

	if _, err := s.store.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	logger.Info().Int64("replyID", reply.ID).Int64("commentID", commentID).Msg("Reply added")
	return reply, nil
}

// GetReplies returns the replies for a batch of comment IDs
func (s *commentService) GetReplies(ctx context.Context, commentIDs []int64) ([]models.Reply, error) {
	return s.store.GetRepliesByCommentIDs(ctx, commentIDs)
}
