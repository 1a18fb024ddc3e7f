package api

import (
	"context"

	"forgeauth/internal/auth/domain/services"
)

// AuthUseCase определяет основной порт для операций с учетными данными.
type AuthUseCase interface {
	Register(ctx context.Context, username, email, password, confirmPassword string) error

	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
}
