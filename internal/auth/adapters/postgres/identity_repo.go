package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"forgeauth/internal/auth/domain/entities"
	"forgeauth/internal/auth/domain/services"
	"forgeauth/internal/auth/ports/repositories"
	"forgeauth/pkg/logger"
)

// PgxPoolInterface описывает подмножество pgxpool.Pool, используемое репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Имена ограничений уникальности из миграции identities.
const (
	constraintUsername = "identities_username_key"
	constraintEmail    = "identities_email_key"
)

// IdentityRepository реализует интерфейс repositories.IdentityRepository для работы с Postgres.
type IdentityRepository struct {
	pool PgxPoolInterface
}

// NewIdentityRepository создает новый экземпляр репозитория учетных записей.
func NewIdentityRepository(pool PgxPoolInterface) repositories.IdentityRepository {
	return &IdentityRepository{pool: pool}
}

// ExistsByUsername проверяет наличие учетной записи с данным username.
func (r *IdentityRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "identity"), zap.String("method", "ExistsByUsername"))

	query := `
        SELECT EXISTS (SELECT 1 FROM identities WHERE username = $1)
    `

	var exists bool
	if err := r.pool.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		log.Error(ctx, "error checking username existence", zap.Error(err))
		return false, fmt.Errorf("error checking username existence: %w", err)
	}

	return exists, nil
}

// ExistsByEmail проверяет наличие учетной записи с данным email.
func (r *IdentityRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "identity"), zap.String("method", "ExistsByEmail"))

	query := `
        SELECT EXISTS (SELECT 1 FROM identities WHERE email = $1)
    `

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		log.Error(ctx, "error checking email existence", zap.Error(err))
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// FindByUsername находит учетную запись по username.
func (r *IdentityRepository) FindByUsername(ctx context.Context, username string) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("repository", "identity"), zap.String("method", "FindByUsername"))

	query := `
        SELECT id, username, email, password_hash, created_at, updated_at
        FROM identities
        WHERE username = $1
    `

	var identity entities.Identity
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&identity.ID,
		&identity.Username,
		&identity.Email,
		&identity.PasswordHash,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "identity not found", zap.String("username", username))
			return nil, entities.ErrIdentityNotFound
		}
		log.Error(ctx, "error finding identity by username", zap.Error(err))
		return nil, fmt.Errorf("error querying identity by username: %w", err)
	}

	return &identity, nil
}

// Create создает новую учетную запись. Нарушение ограничения уникальности
// транслируется в доменную ошибку конфликта, поэтому гонка двух конкурентных
// регистраций разрешается на уровне базы данных.
func (r *IdentityRepository) Create(ctx context.Context, identity *entities.Identity) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("repository", "identity"), zap.String("method", "Create"))

	query := `
        INSERT INTO identities (username, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, username, email, password_hash, created_at, updated_at
    `

	var created entities.Identity
	err := r.pool.QueryRow(ctx, query,
		identity.Username,
		identity.Email,
		identity.PasswordHash,
	).Scan(
		&created.ID,
		&created.Username,
		&created.Email,
		&created.PasswordHash,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		if conflictErr := translateUniqueViolation(err); conflictErr != nil {
			log.Debug(ctx, "unique constraint violated", zap.Error(err))
			return nil, conflictErr
		}
		log.Error(ctx, "error creating identity", zap.Error(err))
		return nil, fmt.Errorf("error creating identity: %w", err)
	}

	return &created, nil
}

// translateUniqueViolation возвращает доменную ошибку конфликта для нарушений
// уникальности или nil для любых других ошибок.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	switch {
	case pgErr.ConstraintName == constraintEmail || strings.Contains(pgErr.Detail, "(email)"):
		return services.ErrEmailTaken
	default:
		return services.ErrUsernameTaken
	}
}
