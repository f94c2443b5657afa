package dto

import "github.com/postigiusti/bacheca/internal/app/models"

// CreatePostRequest is the payload for publishing a post
type CreatePostRequest struct {
	Content  string              `json:"content" binding:"required"`
	Category models.PostCategory `json:"category" binding:"required"`
}

// CreateCommentRequest is the payload for commenting on a post
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateReplyRequest is the payload for the post author's reply to a comment
type CreateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// SaveSelectionRequest is the payload for saving a geographic selection
type SaveSelectionRequest struct {
	RegionID   *int64 `json:"regionId"`
	ProvinceID *int64 `json:"provinceId"`
}

// SelectionResponse is a member's saved drill-down with names resolved
type SelectionResponse struct {
	RegionID     *int64  `json:"regionId"`
	RegionName   *string `json:"regionName,omitempty"`
	ProvinceID   *int64  `json:"provinceId"`
	ProvinceName *string `json:"provinceName,omitempty"`
}
