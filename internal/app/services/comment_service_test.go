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

type fakeCommentStore struct {
	comments map[int64]*models.Comment
	replies  map[int64]*models.Reply // keyed by comment ID
	nextID   int64
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{
		comments: make(map[int64]*models.Comment),
		replies:  make(map[int64]*models.Reply),
	}
}

func (f *fakeCommentStore) CreateComment(_ context.Context, comment *models.Comment) (int64, error) {
	f.nextID++
	comment.ID = f.nextID
	comment.CreatedAt = time.Now()
	copied := *comment
	f.comments[comment.ID] = &copied
	return comment.ID, nil
}

func (f *fakeCommentStore) GetCommentByID(_ context.Context, id int64) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentStore) GetCommentsByPostID(_ context.Context, postID int64) ([]models.Comment, error) {
	result := []models.Comment{}
	for i := int64(1); i <= f.nextID; i++ {
		if comment, ok := f.comments[i]; ok && comment.PostID == postID {
			result = append(result, *comment)
		}
	}
	return result, nil
}

func (f *fakeCommentStore) CreateReply(_ context.Context, reply *models.Reply) (int64, error) {
	if _, exists := f.replies[reply.CommentID]; exists {
		return 0, apperrors.ErrReplyExists
	}
	f.nextID++
	reply.ID = f.nextID
	reply.CreatedAt = time.Now()
	copied := *reply
	f.replies[reply.CommentID] = &copied
	return reply.ID, nil
}

func (f *fakeCommentStore) GetRepliesByCommentIDs(_ context.Context, commentIDs []int64) ([]models.Reply, error) {
	result := []models.Reply{}
	for _, id := range commentIDs {
		if reply, ok := f.replies[id]; ok {
			result = append(result, *reply)
		}
	}
	return result, nil
}

func newCommentFixture(t *testing.T) (CommentService, *fakePostStore, *models.Post) {
	t.Helper()

	posts := newFakePostStore()
	geo := NewGeoService(newFakeGeoStore())
	postSvc := NewPostService(posts, geo)

	post, err := postSvc.CreatePost(context.Background(), 10, 1, "cerco stanza", models.CategorySeeking)
	require.NoError(t, err)

	return NewCommentService(newFakeCommentStore(), posts), posts, post
}

func TestCreateCommentOnOpenPost(t *testing.T) {
	svc, _, post := newCommentFixture(t)

	comment, err := svc.CreateComment(context.Background(), post.ID, 2, "  ho una stanza libera  ")
	require.NoError(t, err)
	assert.Equal(t, "ho una stanza libera", comment.Content)

	comments, err := svc.GetComments(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestCreateCommentOnClosedPostRejected(t *testing.T) {
	svc, posts, post := newCommentFixture(t)
	require.NoError(t, posts.ClosePost(context.Background(), post.ID, 1))

	_, err := svc.CreateComment(context.Background(), post.ID, 2, "troppo tardi")
	assert.ErrorIs(t, err, apperrors.ErrPostClosed)
}

func TestCreateReplyOnlyPostAuthor(t *testing.T) {
	svc, _, post := newCommentFixture(t)

	comment, err := svc.CreateComment(context.Background(), post.ID, 2, "interessato")
	require.NoError(t, err)

	// A third member is not the post author
	_, err = svc.CreateReply(context.Background(), comment.ID, 3, "reply")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The commenter is not the post author either
	_, err = svc.CreateReply(context.Background(), comment.ID, 2, "reply")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	reply, err := svc.CreateReply(context.Background(), comment.ID, 1, "scrivimi in privato")
	require.NoError(t, err)
	assert.Equal(t, comment.ID, reply.CommentID)
}

func TestCreateReplySingleTimePerComment(t *testing.T) {
	svc, _, post := newCommentFixture(t)

	comment, err := svc.CreateComment(context.Background(), post.ID, 2, "interessato")
	require.NoError(t, err)

	_, err = svc.CreateReply(context.Background(), comment.ID, 1, "prima risposta")
	require.NoError(t, err)

	_, err = svc.CreateReply(context.Background(), comment.ID, 1, "seconda risposta")
	assert.ErrorIs(t, err, apperrors.ErrReplyExists)
}

func TestCreateReplyOnClosedPostRejected(t *testing.T) {
	svc, posts, post := newCommentFixture(t)

	comment, err := svc.CreateComment(context.Background(), post.ID, 2, "interessato")
	require.NoError(t, err)

	require.NoError(t, posts.ClosePost(context.Background(), post.ID, 1))

	_, err = svc.CreateReply(context.Background(), comment.ID, 1, "reply")
	assert.ErrorIs(t, err, apperrors.ErrPostClosed)
}

func TestGetRepliesBatch(t *testing.T) {
	svc, _, post := newCommentFixture(t)

	first, err := svc.CreateComment(context.Background(), post.ID, 2, "primo")
	require.NoError(t, err)
	second, err := svc.CreateComment(context.Background(), post.ID, 3, "secondo")
	require.NoError(t, err)

	_, err = svc.CreateReply(context.Background(), first.ID, 1, "risposta")
	require.NoError(t, err)

	replies, err := svc.GetReplies(context.Background(), []int64{first.ID, second.ID})
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, first.ID, replies[0].CommentID)
}
