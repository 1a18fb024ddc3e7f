// Package dto содержит объекты передачи данных HTTP слоя.
package dto

import (
	"time"
)

// RegisterRequest содержит данные для регистрации учетной записи.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// LoginRequest содержит данные для входа.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// MessageResponse содержит текст подтверждения операции.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse содержит выпущенную пару токенов.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthStatusResponse содержит результат проверки токена доступа.
// Username равен null для неаутентифицированного запроса.
type AuthStatusResponse struct {
	IsAuthenticated bool    `json:"is_authenticated"`
	Username        *string `json:"username"`
}

// ProfileResponse содержит публичные данные учетной записи.
type ProfileResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
