package app_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"forgeauth/internal/auth/app"
	"forgeauth/internal/auth/domain/entities"
)

func TestGetProfile(t *testing.T) {
	testUsername := "alice"
	createdAt := time.Now().UTC().Truncate(time.Second)

	storedIdentity := &entities.Identity{
		ID:           "generated-id",
		Username:     testUsername,
		Email:        "alice@example.com",
		PasswordHash: "hashed_password",
		CreatedAt:    createdAt,
	}

	t.Run("Промах кэша идет в хранилище и кэширует результат", func(t *testing.T) {
		repo := new(mockIdentityRepository)
		profileCache := new(mockCache)

		profileCache.On("Get", mock.Anything, "profile:alice").Return("", nil).Once()
		repo.On("FindByUsername", mock.Anything, testUsername).Return(storedIdentity, nil).Once()
		profileCache.On("Set", mock.Anything, "profile:alice", mock.AnythingOfType("string"), mock.Anything).
			Return(nil).Once()

		useCase := app.NewProfileUseCase(repo, profileCache)
		profile, err := useCase.GetProfile(context.Background(), testUsername)

		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, testUsername, profile.Username)
		assert.Equal(t, storedIdentity.Email, profile.Email)

		repo.AssertExpectations(t)
		profileCache.AssertExpectations(t)
	})

	t.Run("Попадание в кэш не обращается к хранилищу", func(t *testing.T) {
		repo := new(mockIdentityRepository)
		profileCache := new(mockCache)

		cached, err := json.Marshal(map[string]interface{}{
			"username":   testUsername,
			"email":      storedIdentity.Email,
			"created_at": createdAt,
		})
		require.NoError(t, err)

		profileCache.On("Get", mock.Anything, "profile:alice").Return(string(cached), nil).Once()

		useCase := app.NewProfileUseCase(repo, profileCache)
		profile, err := useCase.GetProfile(context.Background(), testUsername)

		require.NoError(t, err)
		assert.Equal(t, testUsername, profile.Username)
		repo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	})

	t.Run("Без кэша каждый запрос идет в хранилище", func(t *testing.T) {
		repo := new(mockIdentityRepository)
		repo.On("FindByUsername", mock.Anything, testUsername).Return(storedIdentity, nil).Once()

		useCase := app.NewProfileUseCase(repo, nil)
		profile, err := useCase.GetProfile(context.Background(), testUsername)

		require.NoError(t, err)
		assert.Equal(t, testUsername, profile.Username)
	})

	t.Run("Несуществующая учетная запись", func(t *testing.T) {
		repo := new(mockIdentityRepository)
		repo.On("FindByUsername", mock.Anything, "ghost").
			Return(nil, entities.ErrIdentityNotFound).Once()

		useCase := app.NewProfileUseCase(repo, nil)
		profile, err := useCase.GetProfile(context.Background(), "ghost")

		assert.Nil(t, profile)
		assert.ErrorIs(t, err, entities.ErrIdentityNotFound)
	})
}
