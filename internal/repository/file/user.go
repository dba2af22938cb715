package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okazarin/taskboard/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// userRecord is the on-disk representation of a user.
type userRecord struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r userRecord) toModel() model.User {
	return model.User{
		ID:           r.ID,
		Name:         r.Name,
		LastName:     r.LastName,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

func toUserRecord(u model.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Name:         u.Name,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

// UserRepository stores users in a users.json collection.
type UserRepository struct {
	c *collection[userRecord]
}

func NewUserRepository(dataDir string) *UserRepository {
	return &UserRepository{c: newCollection[userRecord](filepath.Join(dataDir, "users.json"))}
}

// GetByEmail finds a user by exact, case-sensitive email match.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	var user model.User
	err := r.c.view(func(items []userRecord) error {
		for _, rec := range items {
			if rec.Email == email {
				user = rec.toModel()
				return nil
			}
		}
		return model.ErrNotFound
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	err := r.c.view(func(items []userRecord) error {
		for _, rec := range items {
			if rec.ID == id {
				user = rec.toModel()
				return nil
			}
		}
		return model.ErrNotFound
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	err := r.c.update(func(items []userRecord) ([]userRecord, error) {
		return append(items, toUserRecord(user)), nil
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
