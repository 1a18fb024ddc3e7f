package app

import (
	"context"

	"forgeauth/internal/auth/domain/services"
	"forgeauth/internal/auth/ports/api"
	svc "forgeauth/internal/auth/ports/services"
	"forgeauth/pkg/logger"

	"go.uber.org/zap"
)

const (
	methodAuthorize = "Authorize"

	msgAuthorizing       = "authorizing access token"
	msgMissingToken      = "no token provided"
	msgTokenRejected     = "token rejected"
	msgTokenAuthorized   = "token authorized"
	attrGuardAuthSubject = "username"
)

// GuardUseCaseImpl реализует интерфейс GuardUseCase. Проверка токена
// не обращается к хранилищу: подписи и сроку действия доверяют как есть.
type GuardUseCaseImpl struct {
	tokenSvc svc.TokenService
}

// NewGuardUseCase создает новый экземпляр сервиса авторизации запросов.
func NewGuardUseCase(tokenSvc svc.TokenService) api.GuardUseCase {
	return &GuardUseCaseImpl{tokenSvc: tokenSvc}
}

// Authorize проверяет входящий токен доступа и возвращает контекст
// аутентификации запроса. Любая причина отказа - отсутствующий токен,
// неверная подпись, истекший срок, неверный вид - дает один и тот же
// неаутентифицированный результат и никогда не эскалируется в ошибку.
func (g *GuardUseCaseImpl) Authorize(ctx context.Context, token string) services.AuthContext {
	log := logger.Log(ctx).With(zap.String("method", methodAuthorize))
	log.Debug(ctx, msgAuthorizing)

	if token == "" {
		log.Debug(ctx, msgMissingToken)
		return services.Anonymous()
	}

	claims, err := g.tokenSvc.ValidateAccessToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return services.Anonymous()
	}

	log.Debug(ctx, msgTokenAuthorized, zap.String(attrGuardAuthSubject, claims.Subject))
	return services.Authenticated(claims.Subject)
}
