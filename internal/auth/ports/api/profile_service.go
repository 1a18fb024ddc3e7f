package api

import (
	"context"
	"time"
)

// Profile содержит публичные данные учетной записи. Хэш пароля
// в представление не входит.
type Profile struct {
	Username  string
	Email     string
	CreatedAt time.Time
}

// ProfileUseCase определяет порт для чтения профиля учетной записи.
type ProfileUseCase interface {
	GetProfile(ctx context.Context, username string) (*Profile, error)
}
