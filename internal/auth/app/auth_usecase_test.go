package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"forgeauth/internal/auth/app"
	"forgeauth/internal/auth/domain/entities"
	"forgeauth/internal/auth/domain/services"
)

func TestRegister(t *testing.T) {
	testUsername := "alice"
	testEmail := "alice@example.com"
	testPassword := "pw12345"
	hashedPassword := "hashed_password"

	createdIdentity := &entities.Identity{
		ID:           "generated-id",
		Username:     testUsername,
		Email:        testEmail,
		PasswordHash: hashedPassword,
	}

	tests := []struct {
		name            string
		username        string
		email           string
		password        string
		confirmPassword string
		setupMocks      func(repo *mockIdentityRepository, passwordSvc *mockPasswordService)
		expectedErr     error
	}{
		{
			name:            "Успешная регистрация",
			username:        testUsername,
			email:           testEmail,
			password:        testPassword,
			confirmPassword: testPassword,
			setupMocks: func(repo *mockIdentityRepository, passwordSvc *mockPasswordService) {
				repo.On("ExistsByUsername", mock.Anything, testUsername).Return(false, nil).Once()
				repo.On("ExistsByEmail", mock.Anything, testEmail).Return(false, nil).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).Return(hashedPassword, nil).Once()
				repo.On("Create", mock.Anything, mock.MatchedBy(func(i *entities.Identity) bool {
					return i.Username == testUsername && i.Email == testEmail && i.PasswordHash == hashedPassword
				})).Return(createdIdentity, nil).Once()
			},
			expectedErr: nil,
		},
		{
			name:            "Несовпадение паролей проверяется раньше занятости username",
			username:        testUsername,
			email:           testEmail,
			password:        testPassword,
			confirmPassword: "different",
			setupMocks:      func(repo *mockIdentityRepository, passwordSvc *mockPasswordService) {},
			expectedErr:     services.ErrPasswordMismatch,
		},
		{
			name:            "Занятый username",
			username:        testUsername,
			email:           testEmail,
			password:        testPassword,
			confirmPassword: testPassword,
			setupMocks: func(repo *mockIdentityRepository, passwordSvc *mockPasswordService) {
				repo.On("ExistsByUsername", mock.Anything, testUsername).Return(true, nil).Once()
			},
			expectedErr: services.ErrUsernameTaken,
		},
		{
			name:            "Занятый email",
			username:        testUsername,
			email:           testEmail,
			password:        testPassword,
			confirmPassword: testPassword,
			setupMocks: func(repo *mockIdentityRepository, passwordSvc *mockPasswordService) {
				repo.On("ExistsByUsername", mock.Anything, testUsername).Return(false, nil).Once()
				repo.On("ExistsByEmail", mock.Anything, testEmail).Return(true, nil).Once()
			},
			expectedErr: services.ErrEmailTaken,
		},
		{
			name:            "Пустой username",
			username:        "",
			email:           testEmail,
			password:        testPassword,
			confirmPassword: testPassword,
			setupMocks:      func(repo *mockIdentityRepository, passwordSvc *mockPasswordService) {},
			expectedErr:     entities.ErrEmptyUsername,
		},
		{
			name:            "Пустой пароль",
			username:        testUsername,
			email:           testEmail,
			password:        "",
			confirmPassword: "",
			setupMocks:      func(repo *mockIdentityRepository, passwordSvc *mockPasswordService) {},
			expectedErr:     entities.ErrEmptyPassword,
		},
		{
			name:            "Ошибка хранилища при проверке username",
			username:        testUsername,
			email:           testEmail,
			password:        testPassword,
			confirmPassword: testPassword,
			setupMocks: func(repo *mockIdentityRepository, passwordSvc *mockPasswordService) {
				repo.On("ExistsByUsername", mock.Anything, testUsername).
					Return(false, errors.New("connection refused")).Once()
			},
			expectedErr: services.ErrStoreFailure,
		},
		{
			name:            "Проигранная гонка при создании дает тот же конфликт",
			username:        testUsername,
			email:           testEmail,
			password:        testPassword,
			confirmPassword: testPassword,
			setupMocks: func(repo *mockIdentityRepository, passwordSvc *mockPasswordService) {
				repo.On("ExistsByUsername", mock.Anything, testUsername).Return(false, nil).Once()
				repo.On("ExistsByEmail", mock.Anything, testEmail).Return(false, nil).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).Return(hashedPassword, nil).Once()
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrUsernameTaken).Once()
			},
			expectedErr: services.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockIdentityRepository)
			passwordSvc := new(mockPasswordService)
			tokenSvc := new(mockTokenService)
			tt.setupMocks(repo, passwordSvc)

			useCase := app.NewAuthUseCase(repo, passwordSvc, tokenSvc)
			err := useCase.Register(context.Background(), tt.username, tt.email, tt.password, tt.confirmPassword)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			repo.AssertExpectations(t)
			passwordSvc.AssertExpectations(t)
			// Токены при регистрации не выпускаются.
			tokenSvc.AssertNotCalled(t, "GenerateAccessToken", mock.Anything, mock.Anything)
			tokenSvc.AssertNotCalled(t, "GenerateRefreshToken", mock.Anything, mock.Anything)
		})
	}
}

func TestLogin(t *testing.T) {
	testUsername := "alice"
	testPassword := "pw12345"
	hashedPassword := "hashed_password"

	now := time.Now()
	accessExpires := now.Add(15 * time.Minute)
	refreshExpires := now.Add(24 * time.Hour)

	accessToken := "access-token-123"
	refreshToken := "refresh-token-456"

	storedIdentity := &entities.Identity{
		ID:           "generated-id",
		Username:     testUsername,
		Email:        "alice@example.com",
		PasswordHash: hashedPassword,
	}

	t.Run("Успешный вход возвращает пару токенов", func(t *testing.T) {
		repo := new(mockIdentityRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		repo.On("FindByUsername", mock.Anything, testUsername).Return(storedIdentity, nil).Once()
		passwordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).Return(true, nil).Once()
		tokenSvc.On("GenerateAccessToken", mock.Anything, testUsername).
			Return(accessToken, accessExpires, nil).Once()
		tokenSvc.On("GenerateRefreshToken", mock.Anything, testUsername).
			Return(refreshToken, refreshExpires, nil).Once()

		useCase := app.NewAuthUseCase(repo, passwordSvc, tokenSvc)
		pair, err := useCase.Login(context.Background(), testUsername, testPassword)

		require.NoError(t, err)
		require.NotNil(t, pair)
		assert.Equal(t, accessToken, pair.AccessToken)
		assert.Equal(t, refreshToken, pair.RefreshToken)

		repo.AssertExpectations(t)
		passwordSvc.AssertExpectations(t)
		tokenSvc.AssertExpectations(t)
	})

	t.Run("Несуществующий username дает invalid_credentials", func(t *testing.T) {
		repo := new(mockIdentityRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		repo.On("FindByUsername", mock.Anything, "ghost").
			Return(nil, entities.ErrIdentityNotFound).Once()
		// Сравнение с фиктивным хэшем выполняется и для неизвестного username.
		passwordSvc.On("Verify", mock.Anything, testPassword, mock.AnythingOfType("string")).
			Return(false, nil).Once()

		useCase := app.NewAuthUseCase(repo, passwordSvc, tokenSvc)
		pair, err := useCase.Login(context.Background(), "ghost", testPassword)

		assert.Nil(t, pair)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)

		repo.AssertExpectations(t)
		passwordSvc.AssertExpectations(t)
	})

	t.Run("Неверный пароль дает ту же ошибку, что и неизвестный username", func(t *testing.T) {
		repo := new(mockIdentityRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		repo.On("FindByUsername", mock.Anything, testUsername).Return(storedIdentity, nil).Once()
		passwordSvc.On("Verify", mock.Anything, "wrong", hashedPassword).Return(false, nil).Once()

		useCase := app.NewAuthUseCase(repo, passwordSvc, tokenSvc)
		pair, err := useCase.Login(context.Background(), testUsername, "wrong")

		assert.Nil(t, pair)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("Ошибка хранилища не маскируется под invalid_credentials", func(t *testing.T) {
		repo := new(mockIdentityRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		repo.On("FindByUsername", mock.Anything, testUsername).
			Return(nil, errors.New("connection refused")).Once()

		useCase := app.NewAuthUseCase(repo, passwordSvc, tokenSvc)
		pair, err := useCase.Login(context.Background(), testUsername, testPassword)

		assert.Nil(t, pair)
		assert.ErrorIs(t, err, services.ErrStoreFailure)
		assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("Ошибка генерации токенов", func(t *testing.T) {
		repo := new(mockIdentityRepository)
		passwordSvc := new(mockPasswordService)
		tokenSvc := new(mockTokenService)

		repo.On("FindByUsername", mock.Anything, testUsername).Return(storedIdentity, nil).Once()
		passwordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).Return(true, nil).Once()
		tokenSvc.On("GenerateAccessToken", mock.Anything, testUsername).
			Return("", time.Time{}, errors.New("signing failure")).Once()

		useCase := app.NewAuthUseCase(repo, passwordSvc, tokenSvc)
		pair, err := useCase.Login(context.Background(), testUsername, testPassword)

		assert.Nil(t, pair)
		assert.ErrorIs(t, err, services.ErrGeneratingJWTToken)
	})
}
