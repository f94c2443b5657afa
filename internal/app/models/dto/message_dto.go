package dto

// SendMessageRequest is the payload for a direct message
type SendMessageRequest struct {
	ToNickname string `json:"toNickname" binding:"required"`
	Content    string `json:"content" binding:"required"`
}
