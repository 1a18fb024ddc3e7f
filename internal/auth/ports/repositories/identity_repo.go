package repositories

import (
	"context"

	"forgeauth/internal/auth/domain/entities"
)

// IdentityRepository определяет порт хранилища учетных данных.
// Create обязан атомарно гарантировать уникальность username и email:
// нарушение ограничения на уровне хранилища транслируется в
// services.ErrUsernameTaken или services.ErrEmailTaken.
type IdentityRepository interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	Create(ctx context.Context, identity *entities.Identity) (*entities.Identity, error)

	FindByUsername(ctx context.Context, username string) (*entities.Identity, error)
}
