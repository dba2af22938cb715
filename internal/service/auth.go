package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okazarin/taskboard/internal/logger"
	"github.com/okazarin/taskboard/internal/model"
)

// Auth provides registration and login on top of the user store, the
// password hasher and the token manager.
type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	tokens    model.TokenManager
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a new user. Emails are unique with exact, case-sensitive
// matching; a taken email returns model.ErrEmailTaken.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	a.logger.Debug("Auth service: registering user",
		"email", params.Email)

	_, err := a.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		a.logger.Info("Auth service: email already taken",
			"email", params.Email)
		return model.User{}, model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		LastName:     params.LastName,
		Email:        params.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	user, err = a.userStore.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"email", params.Email,
		"user_id", user.ID)

	return user, nil
}

// Login verifies credentials and mints a bearer token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	a.logger.Debug("Auth service: logging in user",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: password mismatch",
			"email", email)
		return "", model.ErrInvalidCredentials
	}

	token, err := a.tokens.Generate(model.Identity{UserID: user.ID, Name: user.Name})
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return token, nil
}
