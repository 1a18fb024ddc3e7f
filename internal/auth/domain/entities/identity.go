package entities

import (
	"errors"
	"time"
)

// Определяем ошибки домена учетной записи как константы.
var (
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrIdentityNotFound = errors.New("identity not found")
)

// Identity представляет основную сущность зарегистрированной учетной записи.
// PasswordHash никогда не покидает границы сервиса.
type Identity struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
