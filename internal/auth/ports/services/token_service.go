package services

import (
	"context"
	"time"

	domain "forgeauth/internal/auth/domain/services"
)

// TokenService определяет интерфейс для операций с токенами JWT.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, username string) (string, time.Time, error)

	GenerateRefreshToken(ctx context.Context, username string) (string, time.Time, error)

	ValidateAccessToken(ctx context.Context, token string) (domain.TokenClaims, error)
}
