package api

import (
	"context"

	"forgeauth/internal/auth/domain/services"
)

// GuardUseCase определяет порт проверки входящего токена доступа.
type GuardUseCase interface {
	Authorize(ctx context.Context, token string) services.AuthContext
}
