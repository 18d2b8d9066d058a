package models

import (
	"time"

	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/capacity"
	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/schedule"
)

// Tour тур или событие. Все даты необязательны, MaxPeople nil означает отсутствие лимита.
type Tour struct {
	ID                  string     `json:"id"`
	CreatorID           string     `json:"creator_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Location            string     `json:"location"`
	Start               *time.Time `json:"start"`
	End                 *time.Time `json:"end"`
	MaxPeople           *int       `json:"max_people"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	CreatedAt           time.Time  `json:"created_at"`
}

// TourSnapshot тур вместе с текущим числом участников.
// Снимок кешируется, производные поля вычисляются при каждом чтении.
type TourSnapshot struct {
	Tour         Tour `json:"tour"`
	Participants int  `json:"participants"`
}

// TourView представление тура для клиента.
type TourView struct {
	Tour
	Participants int               `json:"participants"`
	Remaining    *int              `json:"remaining"`
	Status       schedule.Status   `json:"status"`
	DateRange    string            `json:"date_range"`
	Countdown    string            `json:"countdown,omitempty"`
	Join         capacity.Decision `json:"join"`
}

// Participant участник тура.
type Participant struct {
	TourID   string    `json:"tour_id"`
	UserID   string    `json:"user_id"`
	FullName string    `json:"full_name"`
	JoinedAt time.Time `json:"joined_at"`
}

// CreateTourRequest используется для приёма данных из JSON-запроса.
// Даты приходят в RFC3339.
type CreateTourRequest struct {
	Title               string     `json:"title" validate:"required,max=200"`
	Description         string     `json:"description" validate:"max=5000"`
	Location            string     `json:"location" validate:"max=200"`
	Start               *time.Time `json:"start"`
	End                 *time.Time `json:"end"`
	MaxPeople           *int       `json:"max_people" validate:"omitempty,gt=0,lte=10000"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
}
