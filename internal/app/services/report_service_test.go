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

type fakeReportStore struct {
	reports map[int64]*models.Report
	nextID  int64
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: make(map[int64]*models.Report)}
}

func (f *fakeReportStore) CreateReport(_ context.Context, report *models.Report) (int64, error) {
	f.nextID++
	report.ID = f.nextID
	report.Status = models.ReportStatusOpen
	report.CreatedAt = time.Now()
	copied := *report
	f.reports[report.ID] = &copied
	return report.ID, nil
}

func (f *fakeReportStore) GetAllReports(_ context.Context) ([]models.Report, error) {
	result := []models.Report{}
	for i := f.nextID; i >= 1; i-- {
		if report, ok := f.reports[i]; ok {
			result = append(result, *report)
		}
	}
	return result, nil
}

func (f *fakeReportStore) GetReportsByStatus(_ context.Context, status models.ReportStatus) ([]models.Report, error) {
	result := []models.Report{}
	for i := f.nextID; i >= 1; i-- {
		if report, ok := f.reports[i]; ok && report.Status == status {
			result = append(result, *report)
		}
	}
	return result, nil
}

func (f *fakeReportStore) UpdateReportStatus(_ context.Context, reportID int64, status models.ReportStatus) error {
	report, ok := f.reports[reportID]
	if !ok {
		return apperrors.ErrReportNotFound
	}
	report.Status = status
	return nil
}

func newReportFixture(t *testing.T) (ReportService, *fakeReportStore, *models.Post, *models.Comment) {
	t.Helper()

	posts := newFakePostStore()
	comments := newFakeCommentStore()
	store := newFakeReportStore()

	post := &models.Post{ProvinceID: 10, AuthorID: 1, Content: "affitto stanza in centro", Category: models.CategoryOffering}
	_, err := posts.CreatePost(context.Background(), post)
	require.NoError(t, err)

	comment := &models.Comment{PostID: post.ID, AuthorID: 2, Content: "ancora disponibile?"}
	_, err = comments.CreateComment(context.Background(), comment)
	require.NoError(t, err)

	return NewReportService(store, posts, comments), store, post, comment
}

func TestReportPostResolvesAuthorAndExcerpt(t *testing.T) {
	svc, _, post, _ := newReportFixture(t)

	report, err := svc.ReportItem(context.Background(), 5, models.ReportItemPost, post.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(5), report.ReportedBy)
	assert.Equal(t, post.AuthorID, report.ReportedUser)
	assert.Equal(t, post.Content, report.ContentExcerpt)
	assert.Equal(t, models.ReportStatusOpen, report.Status)
}

func TestReportCommentResolvesAuthorAndExcerpt(t *testing.T) {
	svc, _, _, comment := newReportFixture(t)

	report, err := svc.ReportItem(context.Background(), 5, models.ReportItemComment, comment.ID)
	require.NoError(t, err)

	assert.Equal(t, comment.AuthorID, report.ReportedUser)
	assert.Equal(t, comment.Content, report.ContentExcerpt)
}

func TestReportExcerptCutAtLimit(t *testing.T) {
	posts := newFakePostStore()
	store := newFakeReportStore()
	svc := NewReportService(store, posts, newFakeCommentStore())

	long := strings.Repeat("à", ReportExcerptLength+50)
	post := &models.Post{ProvinceID: 10, AuthorID: 1, Content: long, Category: models.CategorySeeking}
	_, err := posts.CreatePost(context.Background(), post)
	require.NoError(t, err)

	report, err := svc.ReportItem(context.Background(), 5, models.ReportItemPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, ReportExcerptLength, len([]rune(report.ContentExcerpt)))
}

func TestReportUnknownItem(t *testing.T) {
	svc, _, _, _ := newReportFixture(t)

	_, err := svc.ReportItem(context.Background(), 5, models.ReportItemPost, 999)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)

	_, err = svc.ReportItem(context.Background(), 5, models.ReportItemComment, 999)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)

	_, err = svc.ReportItem(context.Background(), 5, "listing", 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidReportTarget)
}

func TestReportOwnContentRejected(t *testing.T) {
	svc, _, post, _ := newReportFixture(t)

	_, err := svc.ReportItem(context.Background(), post.AuthorID, models.ReportItemPost, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestListReportsFiltersByStatus(t *testing.T) {
	svc, store, post, comment := newReportFixture(t)

	first, err := svc.ReportItem(context.Background(), 5, models.ReportItemPost, post.ID)
	require.NoError(t, err)
	_, err = svc.ReportItem(context.Background(), 5, models.ReportItemComment, comment.ID)
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(context.Background(), first.ID, models.ReportStatusResolved))

	open := models.ReportStatusOpen
	reports, err := svc.ListReports(context.Background(), &open)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, models.ReportItemComment, reports[0].ItemType)

	all, err := svc.ListReports(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.Equal(t, models.ReportStatusResolved, store.reports[first.ID].Status)
}

func TestSetStatusValidation(t *testing.T) {
	svc, _, post, _ := newReportFixture(t)

	report, err := svc.ReportItem(context.Background(), 5, models.ReportItemPost, post.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetStatus(context.Background(), report.ID, "archived"), apperrors.ErrBadRequest)
	assert.ErrorIs(t, svc.SetStatus(context.Background(), 999, models.ReportStatusDismissed), apperrors.ErrReportNotFound)
}
