package cache

import (
	"context"
	"time"
)

// Cache определяет интерфейс кэширования значений по ключу.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}
