// Package parse приводит слабо типизированные записи бэкенда (map[string]any,
// полученные из JSON) к доменным моделям. Отсутствующее поле, null и
// нераспознаваемое значение дают nil, поэтому бизнес-логика не видит
// некорректных дат.
package parse

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/meetoutdoors/meetoutdoors-api/internal/models"
)

// Record слабо типизированная запись.
type Record = map[string]any

// Time возвращает время из поля key или nil.
func Time(r Record, key string) *time.Time {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}

	var t time.Time
	switch val := v.(type) {
	case float64, float32, int, int32, int64, uint, uint32, uint64:
		secs, err := cast.ToFloat64E(val)
		if err != nil {
			return nil
		}
		return unixSeconds(secs)
	case string:
		if strings.TrimSpace(val) == "" {
			return nil
		}
		parsed, err := cast.ToTimeE(val)
		if err != nil {
			return nil
		}
		t = parsed
	default:
		parsed, err := cast.ToTimeE(val)
		if err != nil {
			return nil
		}
		t = parsed
	}

	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

// maxUnixSeconds последняя секунда 9999 года.
const maxUnixSeconds = 253402300799

// unixSeconds переводит секунды unix в время. Ноль, отрицательные значения и
// секунды за пределами 9999 года дают nil.
func unixSeconds(secs float64) *time.Time {
	if math.IsNaN(secs) || math.IsInf(secs, 0) || secs <= 0 || secs > maxUnixSeconds {
		return nil
	}
	t := time.Unix(int64(secs), 0).UTC()
	return &t
}

// Int возвращает целое из поля key или nil.
func Int(r Record, key string) *int {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	if f, isFloat := v.(float64); isFloat && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return nil
	}
	return &n
}

// Bool возвращает логическое значение поля key; отсутствие и мусор дают false.
func Bool(r Record, key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

// String возвращает строковое значение поля key или пустую строку.
func String(r Record, key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// Profile приводит запись таблицы profiles к models.Profile.
func Profile(r Record) models.Profile {
	p := models.Profile{
		ID:           String(r, "id"),
		Email:        String(r, "email"),
		FullName:     String(r, "full_name"),
		IsPremium:    Bool(r, "is_premium"),
		TrialStart:   Time(r, "trial_start"),
		TrialEnd:     Time(r, "trial_end"),
		TrialExpired: Bool(r, "trial_expired"),
	}
	if created := Time(r, "created_at"); created != nil {
		p.CreatedAt = *created
	}
	return p
}

// Tour приводит запись таблицы tours к models.Tour.
// Поддерживаются и имена колонок (start_at), и имена из клиента (start).
func Tour(r Record) models.Tour {
	t := models.Tour{
		ID:                  String(r, "id"),
		CreatorID:           String(r, "creator_id"),
		Title:               String(r, "title"),
		Description:         String(r, "description"),
		Location:            String(r, "location"),
		Start:               firstTime(r, "start_at", "start"),
		End:                 firstTime(r, "end_at", "end"),
		MaxPeople:           Int(r, "max_people"),
		ApplicationDeadline: Time(r, "application_deadline"),
	}
	if created := Time(r, "created_at"); created != nil {
		t.CreatedAt = *created
	}
	return t
}

// TourID возвращает идентификатор тура, к которому относится запись.
// Для таблицы tours это id, для связанных таблиц tour_id.
func TourID(table string, r Record) string {
	if table == models.TableTours {
		return String(r, "id")
	}
	return String(r, "tour_id")
}

func firstTime(r Record, keys ...string) *time.Time {
	for _, k := range keys {
		if t := Time(r, k); t != nil {
			return t
		}
	}
	return nil
}
