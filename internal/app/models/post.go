package models

import "time"

// Post is a classified announcement scoped to a province. Content and
// category are immutable after creation; the closed flag flips false
// to true exactly once and never back.
type Post struct {
	ID             int64        `json:"id" db:"id"`
	ProvinceID     int64        `json:"provinceId" db:"province_id"`
	AuthorID       int64        `json:"authorId" db:"author_id"`
	AuthorNickname string       `json:"authorNickname" db:"author_nickname"` // Joined from users, no column of its own
	Content        string       `json:"content" db:"content"`
	Category       PostCategory `json:"category" db:"category"`
	Closed         bool         `json:"closed" db:"closed"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
}

// Comment is a first-level reply to a post. Immutable after creation.
type Comment struct {
	ID             int64     `json:"id" db:"id"`
	PostID         int64     `json:"postId" db:"post_id"`
	AuthorID       int64     `json:"authorId" db:"author_id"`
	AuthorNickname string    `json:"authorNickname" db:"author_nickname"`
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Reply is a second-level reply, scoped to exactly one comment. Only
// the original post's author may create one, at most one per comment.
type Reply struct {
	ID             int64     `json:"id" db:"id"`
	CommentID      int64     `json:"commentId" db:"comment_id"`
	AuthorID       int64     `json:"authorId" db:"author_id"`
	AuthorNickname string    `json:"authorNickname" db:"author_nickname"`
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
