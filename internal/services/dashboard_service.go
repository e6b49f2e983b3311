package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"machinery-registry/internal/repositories"
	"machinery-registry/pkg/constants"
	"machinery-registry/pkg/types"
)

type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*types.DashboardStats, error)
	Invalidate(ctx context.Context) error
}

// DashboardService serves the counts from the cache and recomputes them on a miss.
// Entries are keyed by a version that Invalidate bumps, so counts computed
// before an invalidation are written under a key nobody reads anymore.
type DashboardService struct {
	repo      repositories.DashboardRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	ttl       time.Duration
	logger    *zap.Logger
}

func NewDashboardService(
	repo repositories.DashboardRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	ttl time.Duration,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{repo: repo, cacheRepo: cacheRepo, ttl: ttl, logger: logger}
}

func (s *DashboardService) GetStats(ctx context.Context) (*types.DashboardStats, error) {
	key := fmt.Sprintf(constants.CacheKeyDashboardStats, s.version(ctx))
	if cached, err := s.cacheRepo.Get(ctx, key); err == nil {
		var stats types.DashboardStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
		s.logger.Warn("dropping unreadable dashboard cache entry")
	}

	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.ttl > 0 {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cacheRepo.Set(ctx, key, string(raw), s.ttl); err != nil {
				s.logger.Warn("could not cache dashboard stats", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *DashboardService) Invalidate(ctx context.Context) error {
	_, err := s.cacheRepo.Incr(ctx, constants.CacheKeyDashboardVersion)
	return err
}

// version is 0 until the first invalidation.
func (s *DashboardService) version(ctx context.Context) int64 {
	raw, err := s.cacheRepo.Get(ctx, constants.CacheKeyDashboardVersion)
	if err != nil {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
