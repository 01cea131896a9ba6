package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
	"github.com/SylvinIsamaza/lung-cancer/models"
	"github.com/SylvinIsamaza/lung-cancer/ports"
)

// UserRepositoryImpl implements UserRepository for PostgreSQL
type UserRepositoryImpl struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create inserts a new user row
func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (:id, :username, :password_hash, NOW())
	`, user)

	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return errors.Conflict("username already registered")
		}
		return errors.DatabaseError("failed to create user", err)
	}

	return nil
}

// GetByUsername retrieves a user by their unique username
func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`, username)

	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("user")
		}
		return nil, errors.DatabaseError("failed to load user", err)
	}

	return &user, nil
}
