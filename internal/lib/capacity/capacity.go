// Package capacity решает, можно ли предложить пользователю вступить в тур.
//
// Проверка носит рекомендательный характер: два одновременных вступления
// могут превысить лимит участников.
package capacity

import "time"

// Reason причина отказа во вступлении.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonFull           Reason = "FULL"
	ReasonDeadlinePassed Reason = "DEADLINE_PASSED"
)

// Decision результат проверки.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
}

// CanJoin проверяет дедлайн заявок, затем вместимость.
// nil в maxPeople означает отсутствие лимита, nil в deadline означает отсутствие дедлайна.
func CanJoin(participants int, maxPeople *int, deadline *time.Time, now time.Time) Decision {
	if deadline != nil && now.After(*deadline) {
		return Decision{Reason: ReasonDeadlinePassed}
	}
	if maxPeople != nil && participants >= *maxPeople {
		return Decision{Reason: ReasonFull}
	}
	return Decision{Allowed: true}
}

// Remaining возвращает число свободных мест или nil, если лимита нет.
func Remaining(participants int, maxPeople *int) *int {
	if maxPeople == nil {
		return nil
	}
	left := max(0, *maxPeople-participants)
	return &left
}
