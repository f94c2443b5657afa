package services

import (
	"github.com/postigiusti/bacheca/internal/app/repositories"
	"github.com/postigiusti/bacheca/internal/pkg/auth"
	"github.com/postigiusti/bacheca/internal/pkg/email"
)

// Services holds all service instances
type Services struct {
	Auth      AuthService
	Geo       GeoService
	Post      PostService
	Comment   CommentService
	Invite    InviteService
	Sponsor   SponsorService
	Message   MessageService
	Selection SelectionService
	Report    ReportService
	User      UserService
}

// NewServices wires all services over the given repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, mailer email.EmailService, notifier MessageNotifier) *Services {
	geo := NewGeoService(repos.Geo)

	return &Services{
		Auth:      NewAuthService(repos.User, repos.Token, repos.Invite, jwtService),
		Geo:       geo,
		Post:      NewPostService(repos.Post, geo),
		Comment:   NewCommentService(repos.Comment, repos.Post),
		Invite:    NewInviteService(repos.Invite, mailer),
		Sponsor:   NewSponsorService(repos.Sponsor),
		Message:   NewMessageService(repos.Message, repos.User, notifier),
		Selection: NewSelectionService(repos.Selection, geo),
		Report:    NewReportService(repos.Report, repos.Post, repos.Comment),
		User:      NewUserService(repos.User, repos.Token, repos.Invite, mailer),
	}
}
