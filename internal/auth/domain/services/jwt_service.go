package services

import (
	"errors"
	"time"
)

// JWTErrors содержит ошибки, связанные с JWT токенами.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrWrongTokenKind     = errors.New("token kind is not allowed for this operation")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// TokenKind определяет назначение токена.
type TokenKind string

// Виды токенов: access авторизует доступ к ресурсам,
// refresh предназначен только для обновления пары.
const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// JWTConfig содержит настройки для JWT сервиса.
type JWTConfig struct {
	SecretKey       []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// TokenClaims определяет структуру данных JWT токена.
// После подписи набор утверждений неизменяем.
type TokenClaims struct {
	Subject   string
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}
