package controllers

import (
	"github.com/postigiusti/bacheca/internal/app/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Auth      *AuthController
	Geo       *GeoController
	Post      *PostController
	Comment   *CommentController
	Invite    *InviteController
	Sponsor   *SponsorController
	Message   *MessageController
	Selection *SelectionController
	Report    *ReportController
	Admin     *AdminController
}

// NewControllers wires all controllers over the given services
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		Auth:      NewAuthController(svcs.Auth),
		Geo:       NewGeoController(svcs.Geo),
		Post:      NewPostController(svcs.Post),
		Comment:   NewCommentController(svcs.Comment),
		Invite:    NewInviteController(svcs.Invite, svcs.Auth),
		Sponsor:   NewSponsorController(svcs.Sponsor),
		Message:   NewMessageController(svcs.Message, svcs.Auth),
		Selection: NewSelectionController(svcs.Selection),
		Report:    NewReportController(svcs.Report),
		Admin:     NewAdminController(svcs.User, svcs.Invite),
	}
}
