package services

import (
	"context"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// ReportExcerptLength caps the snapshot of reported content stored with
// a report
const ReportExcerptLength = 100

// ReportStore is the data access needed by the report service
type ReportStore interface {
	CreateReport(ctx context.Context, report *models.Report) (int64, error)
	GetAllReports(ctx context.Context) ([]models.Report, error)
	GetReportsByStatus(ctx context.Context, status models.ReportStatus) ([]models.Report, error)
	UpdateReportStatus(ctx context.Context, reportID int64, status models.ReportStatus) error
}

// ReportService lets members flag posts and comments and admins review
// the flags
type ReportService interface {
	ReportItem(ctx context.Context, reporterID int64, itemType models.ReportItemType, itemID int64) (*models.Report, error)
	ListReports(ctx context.Context, status *models.ReportStatus) ([]models.Report, error)
	SetStatus(ctx context.Context, reportID int64, status models.ReportStatus) error
}

type reportService struct {
	store    ReportStore
	posts    PostStore
	comments CommentStore
}

// NewReportService creates a new ReportService
func NewReportService(store ReportStore, posts PostStore, comments CommentStore) ReportService {
	return &reportService{store: store, posts: posts, comments: comments}
}

// ReportItem flags a post or comment. The reported author and the content
// excerpt are resolved server-side from the flagged item, so a report
// cannot misattribute content.
func (s *reportService) ReportItem(ctx context.Context, reporterID int64, itemType models.ReportItemType, itemID int64) (*models.Report, error) {
	if !itemType.IsValid() {
		return nil, apperrors.ErrInvalidReportTarget
	}

	var reportedUser int64
	var content string

	switch itemType {
	case models.ReportItemPost:
		post, err := s.posts.GetPostByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		reportedUser = post.AuthorID
		content = post.Content
	case models.ReportItemComment:
		comment, err := s.comments.GetCommentByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		reportedUser = comment.AuthorID
		content = comment.Content
	}

	if reportedUser == reporterID {
		return nil, apperrors.NewBadRequestError("cannot report your own content")
	}

	report := &models.Report{
		ReportedBy:     reporterID,
		ReportedUser:   reportedUser,
		ItemType:       itemType,
		ItemID:         itemID,
		ContentExcerpt: excerpt(content),
	}

	if _, err := s.store.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("reportID", report.ID).
		Str("itemType", string(itemType)).
		Int64("itemID", itemID).
		Msg("Content reported")
	return report, nil
}

// ListReports returns reports for the admin panel, optionally filtered
// by review status
func (s *reportService) ListReports(ctx context.Context, status *models.ReportStatus) ([]models.Report, error) {
	if status == nil {
		return s.store.GetAllReports(ctx)
	}
	if !status.IsValid() {
		return nil, apperrors.NewBadRequestError("unknown report status")
	}
	return s.store.GetReportsByStatus(ctx, *status)
}

// SetStatus settles a report as resolved or dismissed, or reopens it
func (s *reportService) SetStatus(ctx context.Context, reportID int64, status models.ReportStatus) error {
	if !status.IsValid() {
		return apperrors.NewBadRequestError("unknown report status")
	}

	if err := s.store.UpdateReportStatus(ctx, reportID, status); err != nil {
		return err
	}

	logger.Info().Int64("reportID", reportID).Str("status", string(status)).Msg("Report status updated")
	return nil
}

// excerpt snapshots the head of reported content, cut at a rune boundary.
func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= ReportExcerptLength {
		return content
	}
	return string(runes[:ReportExcerptLength])
}
