package repository

import (
	"context"
	"sync/atomic"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverRateLimitRepository prefers the primary (Redis) and falls back
// to the in-memory repository while the primary is down. Recovery is
// probed at most once a minute.
type FailoverRateLimitRepository struct {
	primary   domain.RateLimitRepository
	fallback  domain.RateLimitRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverRateLimitRepository(primary, fallback domain.RateLimitRepository, logger *zerolog.Logger) *FailoverRateLimitRepository {
	return &FailoverRateLimitRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverRateLimitRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		ok, err := r.primary.CheckRateLimit(ctx, userID, limit, window)
		if err == nil {
			return ok, nil
		}
		r.logger.Error().Err(err).Msg("primary rate limit repository failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck.Store(time.Now().UnixNano())
	}

	if time.Since(time.Unix(0, r.lastCheck.Load())) > time.Minute {
		r.lastCheck.Store(time.Now().UnixNano())
		ok, err := r.primary.CheckRateLimit(ctx, userID, limit, window)
		if err == nil {
			r.isDown.Store(false)
			return ok, nil
		}
	}

	return r.fallback.CheckRateLimit(ctx, userID, limit, window)
}
