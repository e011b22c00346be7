package models

import "time"

// User представляет пользователя консоли на стороне сервера
type User struct {
	ID           string     `json:"id"`         // UUID пользователя
	Username     string     `json:"username"`   // уникальный username
	PasswordHash string     `json:"-"`          // bcrypt хеш пароля, наружу не отдается
	CreatedAt    time.Time  `json:"created_at"` // время создания
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
