package models

import (
	"encoding/json"
	"fmt"
)

// Типы изменений строк.
const (
	ChangeInsert = "INSERT"
	ChangeUpdate = "UPDATE"
	ChangeDelete = "DELETE"
)

// Таблицы, об изменениях которых приходят уведомления.
const (
	TableProfiles     = "profiles"
	TableTours        = "tours"
	TableParticipants = "tour_participants"
	TableChatMessages = "chat_messages"
	TableRatings      = "ratings"
)

// ChangeEvent уведомление об изменении строки. Формат совпадает с
// вебхуками базы данных бэкенда, записи приходят без строгой типизации.
type ChangeEvent struct {
	Type      string         `json:"type"`
	Table     string         `json:"table"`
	Schema    string         `json:"schema,omitempty"`
	Record    map[string]any `json:"record"`
	OldRecord map[string]any `json:"old_record"`
}

// NewChangeEvent строит событие из сущности, приводя ее к записи через json.
func NewChangeEvent(changeType, table string, entity any) (ChangeEvent, error) {
	const op = "models.NewChangeEvent"
	raw, err := json.Marshal(entity)
	if err != nil {
		return ChangeEvent{}, fmt.Errorf("%s: %w", op, err)
	}
	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return ChangeEvent{}, fmt.Errorf("%s: %w", op, err)
	}
	return ChangeEvent{Type: changeType, Table: table, Schema: "public", Record: record}, nil
}
