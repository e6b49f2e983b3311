package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"machinery-registry/internal/dto"
	"machinery-registry/internal/entities"
	"machinery-registry/internal/repositories"
	"machinery-registry/pkg/config"
	"machinery-registry/pkg/constants"
	apperrors "machinery-registry/pkg/errors"
	"machinery-registry/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error)
	GetUserByID(ctx context.Context, userID uint64) (*entities.User, error)
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cfg       config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cfg:       cfg,
	}
}

// Login checks the credentials. Failures are counted per username, so unknown
// names lock out the same way real ones do.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error) {
	username := strings.TrimSpace(payload.Username)
	if err := s.checkLockout(ctx, username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.handleFailedLoginAttempt(ctx, username)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, username)
		return nil, apperrors.ErrInvalidCredentials
	}

	s.resetLoginAttempts(ctx, username)
	s.logger.Info("user logged in", zap.Uint64("userID", user.ID), zap.String("username", user.Username))
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uint64) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("GetUserByID: user not found", zap.Uint64("userID", userID), zap.Error(err))
		return nil, notFound(err, "User not found")
	}
	return user, nil
}

func (s *AuthService) checkLockout(ctx context.Context, username string) error {
	if s.cfg.MaxLoginAttempts <= 0 {
		return nil
	}
	if _, err := s.cacheRepo.Get(ctx, fmt.Sprintf(constants.CacheKeyLockout, username)); err == nil {
		return apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Too many failed login attempts. Try again in %.0f minutes.", s.cfg.LockoutDuration.Minutes()),
			apperrors.ErrTooManyAttempts,
			map[string]interface{}{"username": username},
		)
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, username string) {
	if s.cfg.MaxLoginAttempts <= 0 {
		return
	}
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, username)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("could not count failed login", zap.String("username", username), zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		s.logger.Warn("login locked", zap.String("username", username), zap.Int64("attempts", attempts))
		_ = s.cacheRepo.Set(ctx, fmt.Sprintf(constants.CacheKeyLockout, username), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, username string) {
	_ = s.cacheRepo.Del(ctx,
		fmt.Sprintf(constants.CacheKeyLoginAttempts, username),
		fmt.Sprintf(constants.CacheKeyLockout, username),
	)
}
