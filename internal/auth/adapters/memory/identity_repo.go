// Package memory содержит реализацию хранилища учетных записей в памяти.
// Используется в тестах и локальной разработке вместо Postgres.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"forgeauth/internal/auth/domain/entities"
	"forgeauth/internal/auth/domain/services"
	"forgeauth/internal/auth/ports/repositories"
)

// IdentityRepository реализует repositories.IdentityRepository поверх map.
// Мьютекс делает проверку уникальности и вставку одной атомарной операцией.
type IdentityRepository struct {
	mu         sync.Mutex
	byUsername map[string]*entities.Identity
	byEmail    map[string]string
	nextID     int
}

// NewIdentityRepository создает новое хранилище в памяти.
func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{
		byUsername: make(map[string]*entities.Identity),
		byEmail:    make(map[string]string),
		nextID:     1,
	}
}

// ExistsByUsername проверяет наличие учетной записи с данным username.
func (r *IdentityRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.byUsername[username]
	return ok, nil
}

// ExistsByEmail проверяет наличие учетной записи с данным email.
func (r *IdentityRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.byEmail[email]
	return ok, nil
}

// FindByUsername находит учетную запись по username.
func (r *IdentityRepository) FindByUsername(_ context.Context, username string) (*entities.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	identity, ok := r.byUsername[username]
	if !ok {
		return nil, entities.ErrIdentityNotFound
	}

	copied := *identity
	return &copied, nil
}

// Create создает новую учетную запись, атомарно проверяя уникальность
// username и email под одним мьютексом.
func (r *IdentityRepository) Create(_ context.Context, identity *entities.Identity) (*entities.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[identity.Username]; ok {
		return nil, services.ErrUsernameTaken
	}
	if _, ok := r.byEmail[identity.Email]; ok {
		return nil, services.ErrEmailTaken
	}

	now := time.Now().UTC()
	created := &entities.Identity{
		ID:           strconv.Itoa(r.nextID),
		Username:     identity.Username,
		Email:        identity.Email,
		PasswordHash: identity.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.nextID++

	r.byUsername[created.Username] = created
	r.byEmail[created.Email] = created.Username

	copied := *created
	return &copied, nil
}

var _ repositories.IdentityRepository = (*IdentityRepository)(nil)
