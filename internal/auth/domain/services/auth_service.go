package services

import (
	"errors"
)

// Ошибки домена аутентификации.
var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStoreFailure       = errors.New("credential store failure")
)

// TokenPair представляет пару токенов аутентификации.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthContext представляет результат авторизации одного запроса.
// Значение существует только в рамках обработки запроса.
type AuthContext struct {
	IsAuthenticated bool
	Username        string
}

// Anonymous возвращает контекст неаутентифицированного запроса.
func Anonymous() AuthContext {
	return AuthContext{}
}

// Authenticated возвращает контекст запроса, прошедшего проверку токена.
func Authenticated(username string) AuthContext {
	return AuthContext{IsAuthenticated: true, Username: username}
}
