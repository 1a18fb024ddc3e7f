// Package auth содержит HTTP обработчики сервиса учетных данных.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"forgeauth/internal/auth/adapters/http/dto"
	"forgeauth/internal/auth/domain/entities"
	"forgeauth/internal/auth/domain/services"
	"forgeauth/internal/auth/ports/api"
	"forgeauth/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister  = "auth handler: register"
	LogHandlerLogin     = "auth handler: login"
	LogHandlerProtected = "auth handler: protected resource"
	LogHandlerProfile   = "auth handler: profile"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Стабильные коды ошибок, видимые клиенту.
const (
	CodeInvalidRequest     = "invalid_request"
	CodePasswordMismatch   = "password_mismatch"
	CodeUsernameTaken      = "username_taken"
	CodeEmailTaken         = "email_taken"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthenticated    = "unauthenticated"
	CodeProfileNotFound    = "profile_not_found"
	CodeInternalError      = "internal_error"
)

const (
	msgRegistered  = "identity registered successfully"
	bearerPrefix   = "Bearer "
	headerAuth     = "Authorization"
	statusHealthOK = "ok"
)

// Handler содержит HTTP обработчики сервиса.
type Handler struct {
	authUseCase    api.AuthUseCase
	guardUseCase   api.GuardUseCase
	profileUseCase api.ProfileUseCase
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(authUseCase api.AuthUseCase, guardUseCase api.GuardUseCase, profileUseCase api.ProfileUseCase) *Handler {
	return &Handler{
		authUseCase:    authUseCase,
		guardUseCase:   guardUseCase,
		profileUseCase: profileUseCase,
	}
}

// Register обрабатывает запрос на регистрацию новой учетной записи.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respondError(ctx, http.StatusBadRequest, CodeInvalidRequest)
	}

	if err := h.authUseCase.Register(requestCtx, req.Username, req.Email, req.Password, req.ConfirmPassword); err != nil {
		return respondUseCaseError(ctx, err)
	}

	return ctx.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: msgRegistered})
}

// Login обрабатывает запрос на вход и выпускает пару токенов.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respondError(ctx, http.StatusBadRequest, CodeInvalidRequest)
	}

	if req.Username == "" || req.Password == "" {
		return respondError(ctx, http.StatusUnauthorized, CodeInvalidCredentials)
	}

	tokenPair, err := h.authUseCase.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		return respondUseCaseError(ctx, err)
	}

	return ctx.Status(http.StatusOK).JSON(dto.TokenResponse{
		Access:  tokenPair.AccessToken,
		Refresh: tokenPair.RefreshToken,
	})
}

// ProtectedResource проверяет токен доступа и возвращает статус
// аутентификации запроса. Обработчик сам вызывает guard: решение
// о доступе - явное значение, а не состояние запроса.
func (h *Handler) ProtectedResource(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerProtected)

	authCtx := h.guardUseCase.Authorize(requestCtx, bearerToken(ctx))
	if !authCtx.IsAuthenticated {
		return ctx.Status(http.StatusUnauthorized).JSON(dto.AuthStatusResponse{
			IsAuthenticated: false,
			Username:        nil,
		})
	}

	username := authCtx.Username
	return ctx.Status(http.StatusOK).JSON(dto.AuthStatusResponse{
		IsAuthenticated: true,
		Username:        &username,
	})
}

// Profile возвращает профиль аутентифицированной учетной записи.
func (h *Handler) Profile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerProfile)

	authCtx := h.guardUseCase.Authorize(requestCtx, bearerToken(ctx))
	if !authCtx.IsAuthenticated {
		return respondError(ctx, http.StatusUnauthorized, CodeUnauthenticated)
	}

	profile, err := h.profileUseCase.GetProfile(requestCtx, authCtx.Username)
	if err != nil {
		if errors.Is(err, entities.ErrIdentityNotFound) {
			return respondError(ctx, http.StatusNotFound, CodeProfileNotFound)
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, http.StatusInternalServerError, CodeInternalError)
	}

	return ctx.Status(http.StatusOK).JSON(dto.ProfileResponse{
		Username:  profile.Username,
		Email:     profile.Email,
		CreatedAt: profile.CreatedAt,
	})
}

// Healthz сообщает о работоспособности процесса.
func (h *Handler) Healthz(ctx fiber.Ctx) error {
	return ctx.Status(http.StatusOK).JSON(fiber.Map{"status": statusHealthOK})
}

// bearerToken извлекает токен из заголовка Authorization.
// Пустая строка означает отсутствие токена.
func bearerToken(ctx fiber.Ctx) string {
	header := ctx.Get(headerAuth)
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return ""
	}
	return token
}

// respondError отправляет клиенту стабильный код ошибки.
func respondError(ctx fiber.Ctx, status int, code string) error {
	return ctx.Status(status).JSON(fiber.Map{"error": code})
}

// respondUseCaseError транслирует доменную ошибку в HTTP ответ.
// Ошибки вне таксономии сворачиваются в ответ без внутренних деталей.
func respondUseCaseError(ctx fiber.Ctx, err error) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	switch {
	case errors.Is(err, entities.ErrEmptyUsername),
		errors.Is(err, entities.ErrEmptyEmail),
		errors.Is(err, entities.ErrEmptyPassword):
		return respondError(ctx, http.StatusBadRequest, CodeInvalidRequest)
	case errors.Is(err, services.ErrPasswordMismatch):
		return respondError(ctx, http.StatusBadRequest, CodePasswordMismatch)
	case errors.Is(err, services.ErrUsernameTaken):
		return respondError(ctx, http.StatusBadRequest, CodeUsernameTaken)
	case errors.Is(err, services.ErrEmailTaken):
		return respondError(ctx, http.StatusBadRequest, CodeEmailTaken)
	case errors.Is(err, services.ErrInvalidCredentials):
		return respondError(ctx, http.StatusUnauthorized, CodeInvalidCredentials)
	default:
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, http.StatusInternalServerError, CodeInternalError)
	}
}
