package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostStore struct {
	posts  map[int64]*models.Post
	nextID int64
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[int64]*models.Post)}
}

func (f *fakePostStore) CreatePost(_ context.Context, post *models.Post) (int64, error) {
	f.nextID++
	post.ID = f.nextID
	post.CreatedAt = time.Now()
	copied := *post
	f.posts[post.ID] = &copied
	return post.ID, nil
}

func (f *fakePostStore) GetPostByID(_ context.Context, id int64) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostStore) GetPostsByProvince(_ context.Context, provinceID int64, limit uint64) ([]models.Post, error) {
	result := []models.Post{}
	for i := f.nextID; i >= 1 && uint64(len(result)) < limit; i-- {
		if post, ok := f.posts[i]; ok && post.ProvinceID == provinceID {
			result = append(result, *post)
		}
	}
	return result, nil
}

func (f *fakePostStore) ClosePost(_ context.Context, postID, authorID int64) error {
	post, ok := f.posts[postID]
	if !ok || post.AuthorID != authorID {
		return apperrors.ErrPermissionDenied
	}
	post.Closed = true
	return nil
}

type fakeGeoStore struct {
	regions   []models.Region
	provinces map[int64][]models.Province

	regionCalls   int
	provinceCalls int
}

func newFakeGeoStore() *fakeGeoStore {
	return &fakeGeoStore{
		regions: []models.Region{{ID: 1, Name: "Lombardia"}, {ID: 2, Name: "Veneto"}},
		provinces: map[int64][]models.Province{
			1: {{ID: 10, RegionID: 1, Name: "Milano"}, {ID: 11, RegionID: 1, Name: "Bergamo"}},
			2: {{ID: 20, RegionID: 2, Name: "Verona"}},
		},
	}
}

func (f *fakeGeoStore) GetAllRegions(_ context.Context) ([]models.Region, error) {
	f.regionCalls++
	return f.regions, nil
}

func (f *fakeGeoStore) GetRegionByID(_ context.Context, id int64) (*models.Region, error) {
	for _, region := range f.regions {
		if region.ID == id {
			return &region, nil
		}
	}
	return nil, apperrors.ErrRegionNotFound
}

func (f *fakeGeoStore) GetProvincesByRegionID(_ context.Context, regionID int64) ([]models.Province, error) {
	f.provinceCalls++
	return f.provinces[regionID], nil
}

func (f *fakeGeoStore) GetProvinceByID(_ context.Context, id int64) (*models.Province, error) {
	for _, provinces := range f.provinces {
		for _, province := range provinces {
			if province.ID == id {
				return &province, nil
			}
		}
	}
	return nil, apperrors.ErrProvinceNotFound
}

func newPostFixture() (PostService, *fakePostStore) {
	store := newFakePostStore()
	geo := NewGeoService(newFakeGeoStore())
	return NewPostService(store, geo), store
}

func TestCreatePostTrimsAndPublishes(t *testing.T) {
	svc, _ := newPostFixture()

	post, err := svc.CreatePost(context.Background(), 10, 1, "  cerco stanza a Milano  ", models.CategorySeeking)
	require.NoError(t, err)
	assert.Equal(t, "cerco stanza a Milano", post.Content)
	assert.Equal(t, models.CategorySeeking, post.Category)
	assert.False(t, post.Closed)
}

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	svc, store := newPostFixture()

	_, err := svc.CreatePost(context.Background(), 10, 1, "   \n\t ", models.CategorySeeking)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Empty(t, store.posts)
}

func TestCreatePostRejectsInvalidCategory(t *testing.T) {
	svc, _ := newPostFixture()

	_, err := svc.CreatePost(context.Background(), 10, 1, "content", models.PostCategory("RENTING"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
}

func TestCreatePostRejectsTooLongContent(t *testing.T) {
	svc, _ := newPostFixture()

	_, err := svc.CreatePost(context.Background(), 10, 1, strings.Repeat("a", 2001), models.CategoryOffering)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreatePostRejectsUnknownProvince(t *testing.T) {
	svc, _ := newPostFixture()

	_, err := svc.CreatePost(context.Background(), 999, 1, "content", models.CategorySeeking)
	assert.ErrorIs(t, err, apperrors.ErrProvinceNotFound)
}

func TestGetBoardCapsAtFivePosts(t *testing.T) {
	svc, _ := newPostFixture()

	for i := 0; i < 8; i++ {
		_, err := svc.CreatePost(context.Background(), 10, 1, "post content", models.CategoryOffering)
		require.NoError(t, err)
	}

	posts, err := svc.GetBoard(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, posts, MaxBoardPosts)
}

func TestClosePostAuthorOnly(t *testing.T) {
	svc, _ := newPostFixture()

	post, err := svc.CreatePost(context.Background(), 10, 1, "content", models.CategorySeeking)
	require.NoError(t, err)

	err = svc.ClosePost(context.Background(), post.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.ClosePost(context.Background(), post.ID, 1))
}

func TestClosePostIdempotent(t *testing.T) {
	svc, _ := newPostFixture()

	post, err := svc.CreatePost(context.Background(), 10, 1, "content", models.CategorySeeking)
	require.NoError(t, err)

	require.NoError(t, svc.ClosePost(context.Background(), post.ID, 1))
	require.NoError(t, svc.ClosePost(context.Background(), post.ID, 1))
}

func TestClosePostNotFound(t *testing.T) {
	svc, _ := newPostFixture()

	err := svc.ClosePost(context.Background(), 42, 1)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}
