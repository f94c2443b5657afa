package models

import "time"

// Message is a direct message between two members.
type Message struct {
	ID                int64     `json:"id" db:"id"`
	SenderID          int64     `json:"senderId" db:"sender_id"`
	RecipientID       int64     `json:"recipientId" db:"recipient_id"`
	SenderNickname    string    `json:"senderNickname" db:"sender_nickname"`       // Joined from users
	RecipientNickname string    `json:"recipientNickname" db:"recipient_nickname"` // Joined from users
	Content           string    `json:"content" db:"content"`
	Read              bool      `json:"read" db:"read"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}
