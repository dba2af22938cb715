package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/okazarin/taskboard/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository stores users in the users table.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT id, name, last_name, email, password_hash, created_at
			  FROM users WHERE email = ?`

	return r.scanUser(r.store.db.QueryRowContext(ctx, query, email), "email")
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT id, name, last_name, email, password_hash, created_at
			  FROM users WHERE id = ?`

	return r.scanUser(r.store.db.QueryRowContext(ctx, query, id.String()), "id")
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, name, last_name, email, password_hash, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.store.db.ExecContext(ctx, query,
		user.ID.String(), user.Name, user.LastName, user.Email, user.PasswordHash,
		toMillis(user.CreatedAt),
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) scanUser(row *sql.Row, by string) (model.User, error) {
	var (
		user      model.User
		id        string
		createdAt int64
	)
	err := row.Scan(&id, &user.Name, &user.LastName, &user.Email, &user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by %s: %w", by, err)
	}

	user.ID, err = uuid.Parse(id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse user id: %w", err)
	}
	user.CreatedAt = fromMillis(createdAt)

	return user, nil
}
