package models

import "time"

// Rating оценка, которую один пользователь поставил другому.
type Rating struct {
	RaterID   string    `json:"rater_id"`
	RateeID   string    `json:"ratee_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingSummary агрегированная оценка профиля.
type RatingSummary struct {
	RateeID string  `json:"ratee_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// RateRequest тело запроса на выставление оценки.
type RateRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}
