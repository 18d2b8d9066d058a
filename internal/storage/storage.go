// Package storage содержит общие ошибки слоя хранения.
package storage

import "errors"

var (
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyJoined пользователь уже участник тура.
	ErrAlreadyJoined = errors.New("already joined")
	// ErrNotJoined пользователь не участник тура.
	ErrNotJoined = errors.New("not joined")
)
