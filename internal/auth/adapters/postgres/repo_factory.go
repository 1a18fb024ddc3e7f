package postgres

import (
	"forgeauth/internal/auth/ports/repositories"
)

// RepositoryFactory создает репозитории для работы с Postgres.
type RepositoryFactory struct {
	pool PgxPoolInterface
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// IdentityRepository возвращает репозиторий учетных записей.
func (f *RepositoryFactory) IdentityRepository() repositories.IdentityRepository {
	return NewIdentityRepository(f.pool)
}
