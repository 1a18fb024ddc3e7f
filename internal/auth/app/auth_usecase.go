package app

import (
	"context"
	"errors"
	"fmt"

	"forgeauth/internal/auth/domain/entities"
	"forgeauth/internal/auth/domain/services"
	"forgeauth/internal/auth/ports/api"
	"forgeauth/internal/auth/ports/repositories"
	svc "forgeauth/internal/auth/ports/services"
	"forgeauth/pkg/logger"

	"go.uber.org/zap"
)

const (
	methodRegister       = "Register"
	methodLogin          = "Login"
	methodGenerateTokens = "generateTokenPair"

	msgStartRegistration   = "starting identity registration"
	msgEmptyField          = "registration request with missing field"
	msgPasswordMismatch    = "password confirmation does not match"
	msgUsernameExists      = "identity with this username already exists"
	msgEmailExists         = "identity with this email already exists"
	msgIdentityRegistered  = "identity registered successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent username"
	msgInvalidPasswordAuth = "invalid password provided"
	msgIdentityLoggedIn    = "identity logged in successfully"
	msgTokensGenerated     = "authentication tokens generated"
	msgTokenPairGenerated  = "token pair generated successfully"

	msgErrCheckUsername     = "failed to check existing username"
	msgErrCheckEmail        = "failed to check existing email"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateIdentity    = "failed to create identity"
	msgErrFindingIdentity   = "error finding identity by username"
	msgErrVerifyingPassword = "error verifying password"
	msgErrGenerateTokens    = "failed to generate tokens on login"

	msgErrGenerateAccessToken  = "failed to generate access token"
	msgErrGenerateRefreshToken = "failed to generate refresh token"

	errCtxValidatingRequest      = "validating registration request"
	errCtxPasswordMismatch       = "password confirmation"
	errCtxCheckingUsername       = "checking existing username"
	errCtxCheckingEmail          = "checking existing email"
	errCtxUsernameRegistered     = "username already registered"
	errCtxEmailRegistered        = "email already registered"
	errCtxHashingPassword        = "hashing password"
	errCtxCreatingIdentity       = "creating identity"
	errCtxInvalidCredentials     = "invalid credentials"
	errCtxFindingIdentity        = "finding identity"
	errCtxVerifyingPassword      = "verifying password"
	errCtxGeneratingTokens       = "generating tokens"
	errCtxGeneratingAccessToken  = "generating access token"
	errCtxGeneratingRefreshToken = "generating refresh token"
)

// dummyPasswordHash - валидный bcrypt-хэш, против которого выполняется
// сравнение при логине с несуществующим username, чтобы путь
// "нет такого пользователя" выполнял ту же работу, что и "неверный пароль".
//
//nolint:gosec
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	identityRepo repositories.IdentityRepository
	passwordSvc  svc.PasswordService
	tokenSvc     svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	identityRepo repositories.IdentityRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		identityRepo: identityRepo,
		passwordSvc:  passwordSvc,
		tokenSvc:     tokenSvc,
	}
}

// Register создает новую учетную запись. Проверки выполняются строго по
// порядку: совпадение паролей, занятость username, занятость email, создание.
// Первая неудавшаяся проверка завершает операцию; токены при регистрации
// не выпускаются.
func (a *AuthUseCaseImpl) Register(ctx context.Context, username, email, password, confirmPassword string) error {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", username))
	log.Debug(ctx, msgStartRegistration)

	if err := validateRegistration(username, email, password, confirmPassword); err != nil {
		log.Debug(ctx, msgEmptyField, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxValidatingRequest, err)
	}

	if password != confirmPassword {
		log.Debug(ctx, msgPasswordMismatch)
		return fmt.Errorf("%s: %w", errCtxPasswordMismatch, services.ErrPasswordMismatch)
	}

	usernameTaken, err := a.identityRepo.ExistsByUsername(ctx, username)
	if err != nil {
		log.Error(ctx, msgErrCheckUsername, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingUsername, services.ErrStoreFailure)
	}
	if usernameTaken {
		log.Debug(ctx, msgUsernameExists)
		return fmt.Errorf("%s: %w", errCtxUsernameRegistered, services.ErrUsernameTaken)
	}

	emailTaken, err := a.identityRepo.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error(ctx, msgErrCheckEmail, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingEmail, services.ErrStoreFailure)
	}
	if emailTaken {
		log.Debug(ctx, msgEmailExists)
		return fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailTaken)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxHashingPassword, services.ErrStoreFailure)
	}

	newIdentity := &entities.Identity{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	created, err := a.identityRepo.Create(ctx, newIdentity)
	if err != nil {
		// Проигравшая сторона гонки конкурентных регистраций получает
		// от хранилища тот же конфликт, что и при обычной проверке.
		if errors.Is(err, services.ErrUsernameTaken) || errors.Is(err, services.ErrEmailTaken) {
			log.Debug(ctx, msgErrCreateIdentity, zap.Error(err))
			return fmt.Errorf("%s: %w", errCtxCreatingIdentity, err)
		}
		log.Error(ctx, msgErrCreateIdentity, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCreatingIdentity, services.ErrStoreFailure)
	}

	log.Info(ctx, msgIdentityRegistered, zap.String("identityID", created.ID))
	return nil
}

// Login аутентифицирует учетную запись по username и паролю и выпускает
// пару токенов. Неизвестный username и неверный пароль неразличимы
// для вызывающей стороны.
func (a *AuthUseCaseImpl) Login(ctx context.Context, username, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	identity, err := a.identityRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrIdentityNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			// Сравнение с фиктивным хэшем выравнивает время ответа.
			_, _ = a.passwordSvc.Verify(ctx, password, dummyPasswordHash)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingIdentity, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingIdentity, services.ErrStoreFailure)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, identity.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, services.ErrStoreFailure)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	log.Info(ctx, msgIdentityLoggedIn)

	tokenPair, err := a.generateTokenPair(ctx, identity.Username)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgTokensGenerated)
	return tokenPair, nil
}

// Вспомогательная функция для генерации пары токенов. Выпуск не оставляет
// следов на сервере: пара целиком определяется учетной записью, текущим
// временем и секретом подписи.
func (a *AuthUseCaseImpl) generateTokenPair(ctx context.Context, username string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateTokens),
		zap.String("username", username),
	)

	accessToken, _, err := a.tokenSvc.GenerateAccessToken(ctx, username)
	if err != nil {
		log.Error(ctx, msgErrGenerateAccessToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingAccessToken, services.ErrGeneratingJWTToken)
	}

	refreshToken, _, err := a.tokenSvc.GenerateRefreshToken(ctx, username)
	if err != nil {
		log.Error(ctx, msgErrGenerateRefreshToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingRefreshToken, services.ErrGeneratingJWTToken)
	}

	log.Debug(ctx, msgTokenPairGenerated)

	return &services.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Валидация обязательных полей запроса регистрации.
func validateRegistration(username, email, password, confirmPassword string) error {
	switch {
	case username == "":
		return entities.ErrEmptyUsername
	case email == "":
		return entities.ErrEmptyEmail
	case password == "" || confirmPassword == "":
		return entities.ErrEmptyPassword
	}
	return nil
}
