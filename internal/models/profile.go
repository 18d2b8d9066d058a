// Package models содержит доменные структуры сервиса: профили, туры,
// участников, сообщения чата и оценки, а также DTO входящих запросов.
package models

import (
	"time"

	"github.com/meetoutdoors/meetoutdoors-api/internal/lib/entitlement"
)

// Profile профиль пользователя. TrialExpired это денормализованный флаг,
// который может отставать от вычисленного значения.
type Profile struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	IsPremium    bool       `json:"is_premium"`
	TrialStart   *time.Time `json:"trial_start"`
	TrialEnd     *time.Time `json:"trial_end"`
	TrialExpired bool       `json:"trial_expired"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Entitlement возвращает поля профиля, нужные для расчёта доступа.
func (p *Profile) Entitlement() entitlement.Profile {
	return entitlement.Profile{
		IsPremium:    p.IsPremium,
		TrialStart:   p.TrialStart,
		TrialEnd:     p.TrialEnd,
		TrialExpired: p.TrialExpired,
	}
}

// RegisterProfileRequest тело запроса на создание профиля.
type RegisterProfileRequest struct {
	FullName string `json:"full_name" validate:"required,max=120"`
}
