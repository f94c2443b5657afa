package repositories

import (
	"github.com/postigiusti/bacheca/internal/db"
)

// Repositories holds all repository instances
type Repositories struct {
	User      *UserRepository
	Token     *TokenRepository
	Geo       *GeoRepository
	Post      *PostRepository
	Comment   *CommentRepository
	Invite    *InviteRepository
	Sponsor   *SponsorRepository
	Message   *MessageRepository
	Selection *SelectionRepository
	Report    *ReportRepository
}

// NewRepositories creates all repositories backed by the given database
func NewRepositories(pgdb *db.PostgresDB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(pgdb),
		Token:     NewTokenRepository(pgdb.Pool),
		Geo:       NewGeoRepository(pgdb.Pool),
		Post:      NewPostRepository(pgdb.Pool),
		Comment:   NewCommentRepository(pgdb.Pool),
		Invite:    NewInviteRepository(pgdb.Pool),
		Sponsor:   NewSponsorRepository(pgdb),
		Message:   NewMessageRepository(pgdb.Pool),
		Selection: NewSelectionRepository(pgdb.Pool),
		Report:    NewReportRepository(pgdb.Pool),
	}
}
