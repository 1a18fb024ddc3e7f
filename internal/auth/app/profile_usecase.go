package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"forgeauth/internal/auth/ports/api"
	"forgeauth/internal/auth/ports/cache"
	"forgeauth/internal/auth/ports/repositories"
	"forgeauth/pkg/logger"

	"go.uber.org/zap"
)

const (
	methodGetProfile = "GetProfile"

	msgRequestingProfile = "requesting identity profile"
	msgProfileCacheHit   = "profile served from cache"
	msgProfileRetrieved  = "identity profile successfully retrieved"

	msgErrFindingProfile  = "failed to find identity by username"
	msgErrDecodingProfile = "failed to decode cached profile"
	msgErrCachingProfile  = "failed to cache profile"

	errCtxFetchingProfile = "fetching identity profile"

	profileCacheKeyPrefix = "profile:"
	profileCacheTTL       = 5 * time.Minute
)

// cachedProfile - представление профиля в кэше.
type cachedProfile struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileUseCaseImpl реализует интерфейс ProfileUseCase с кэшем
// для чтения поверх хранилища учетных записей.
type ProfileUseCaseImpl struct {
	identityRepo repositories.IdentityRepository
	cache        cache.Cache
}

// NewProfileUseCase создает новый экземпляр сервиса профиля.
// Кэш может быть nil: тогда каждый запрос идет в хранилище.
func NewProfileUseCase(identityRepo repositories.IdentityRepository, profileCache cache.Cache) api.ProfileUseCase {
	return &ProfileUseCaseImpl{
		identityRepo: identityRepo,
		cache:        profileCache,
	}
}

// GetProfile возвращает публичный профиль учетной записи по username.
// Хэш пароля в профиль не попадает.
func (u *ProfileUseCaseImpl) GetProfile(ctx context.Context, username string) (*api.Profile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProfile), zap.String("username", username))
	log.Debug(ctx, msgRequestingProfile)

	cacheKey := profileCacheKeyPrefix + username

	if u.cache != nil {
		if raw, err := u.cache.Get(ctx, cacheKey); err == nil && raw != "" {
			var cached cachedProfile
			if decodeErr := json.Unmarshal([]byte(raw), &cached); decodeErr != nil {
				log.Warn(ctx, msgErrDecodingProfile, zap.Error(decodeErr))
			} else {
				log.Debug(ctx, msgProfileCacheHit)
				return &api.Profile{
					Username:  cached.Username,
					Email:     cached.Email,
					CreatedAt: cached.CreatedAt,
				}, nil
			}
		}
	}

	identity, err := u.identityRepo.FindByUsername(ctx, username)
	if err != nil {
		log.Error(ctx, msgErrFindingProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	profile := &api.Profile{
		Username:  identity.Username,
		Email:     identity.Email,
		CreatedAt: identity.CreatedAt,
	}

	if u.cache != nil {
		raw, err := json.Marshal(cachedProfile{
			Username:  profile.Username,
			Email:     profile.Email,
			CreatedAt: profile.CreatedAt,
		})
		if err == nil {
			if err := u.cache.Set(ctx, cacheKey, string(raw), profileCacheTTL); err != nil {
				log.Warn(ctx, msgErrCachingProfile, zap.Error(err))
			}
		}
	}

	log.Info(ctx, msgProfileRetrieved)
	return profile, nil
}
