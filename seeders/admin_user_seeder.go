package seeders

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"machinery-registry/internal/entities"
	"machinery-registry/internal/repositories"
	"machinery-registry/pkg/config"
	apperrors "machinery-registry/pkg/errors"
	"machinery-registry/pkg/utils"
)

// EnsureAdmin creates the administrator account when it does not exist yet.
// An existing account is left untouched, password included.
func EnsureAdmin(ctx context.Context, userRepo repositories.UserRepositoryInterface, cfg config.AdminConfig, logger *zap.Logger) (bool, error) {
	_, err := userRepo.FindByUsername(ctx, cfg.Username)
	if err == nil {
		logger.Debug("admin user already exists", zap.String("username", cfg.Username))
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return false, fmt.Errorf("could not look up admin user: %w", err)
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return false, err
	}
	id, err := userRepo.Create(ctx, nil, entities.User{
		Username: cfg.Username,
		Password: hash,
		FullName: cfg.FullName,
	})
	if err != nil {
		return false, fmt.Errorf("could not create admin user: %w", err)
	}

	logger.Info("admin user created", zap.Uint64("id", id), zap.String("username", cfg.Username))
	return true, nil
}

// SetPassword replaces the password of an existing user.
func SetPassword(ctx context.Context, userRepo repositories.UserRepositoryInterface, username, password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	user, err := userRepo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("user %q: %w", username, err)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return userRepo.UpdatePassword(ctx, user.ID, hash)
}
