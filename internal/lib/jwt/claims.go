// Package jwt проверяет access-токены, выпущенные бэкендом аутентификации.
//
// Токены подписаны HS256 общим секретом. Идентификатор пользователя лежит в sub.
package jwt

import "github.com/golang-jwt/jwt/v5"

// Claims описывает данные пользователя, хранящиеся в токене.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID возвращает идентификатор пользователя из sub.
func (c *Claims) UserID() string {
	return c.Subject
}
