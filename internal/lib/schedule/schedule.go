// Package schedule определяет статус тура по его датам, форматирует диапазон дат
// и строит обратный отсчёт до дедлайна подачи заявок.
package schedule

import (
	"fmt"
	"time"
)

// Status статус тура или события.
type Status string

const (
	StatusUpcoming Status = "Upcoming"
	StatusLive     Status = "Live now"
	StatusEnded    Status = "Ended"
)

// DateLayout фиксированный формат даты, не зависящий от локали.
const DateLayout = "02 Jan 2006"

// ApplicationsClosed строка обратного отсчёта для прошедшего дедлайна.
const ApplicationsClosed = "Applications closed"

// Classify возвращает статус для интервала [start, end] на момент now.
// Без дат тур считается предстоящим. Тур только с началом после старта
// остаётся "Live now" бессрочно.
func Classify(start, end *time.Time, now time.Time) Status {
	switch {
	case start == nil && end == nil:
		return StatusUpcoming
	case end == nil:
		if now.Before(*start) {
			return StatusUpcoming
		}
		return StatusLive
	case start == nil:
		if !now.After(*end) {
			return StatusLive
		}
		return StatusEnded
	default:
		if now.Before(*start) {
			return StatusUpcoming
		}
		if !now.After(*end) {
			return StatusLive
		}
		return StatusEnded
	}
}

// FormatDateRange форматирует диапазон дат в часовом поясе loc.
// Для одной границы или одного календарного дня возвращается одна дата,
// иначе "<start> – <end>". Без дат возвращается пустая строка.
func FormatDateRange(start, end *time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	switch {
	case start == nil && end == nil:
		return ""
	case end == nil:
		return start.In(loc).Format(DateLayout)
	case start == nil:
		return end.In(loc).Format(DateLayout)
	}

	s, e := start.In(loc), end.In(loc)
	if sameDay(s, e) {
		return s.Format(DateLayout)
	}
	return s.Format(DateLayout) + " – " + e.Format(DateLayout)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Countdown возвращает оставшееся до deadline время в крупнейших ненулевых единицах.
// Если deadline не позже now, возвращается ApplicationsClosed.
func Countdown(deadline, now time.Time) string {
	if !deadline.After(now) {
		return ApplicationsClosed
	}

	left := deadline.Sub(now)
	days := int(left / (24 * time.Hour))
	hours := int(left % (24 * time.Hour) / time.Hour)
	minutes := int(left % time.Hour / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
