package models

import "time"

// ChatMessage сообщение в чате тура.
type ChatMessage struct {
	ID        int64     `json:"id"`
	TourID    string    `json:"tour_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// SendMessageRequest тело запроса на отправку сообщения.
type SendMessageRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}
