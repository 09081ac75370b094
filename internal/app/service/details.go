package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"video-research/internal/domain"
)

// DetailFetcher retrieves detail records in batches of domain.MaxPageSize ids.
type DetailFetcher struct {
	api    domain.VideoAPI
	delay  time.Duration
	logger *zap.Logger
}

// NewDetailFetcher creates a new DetailFetcher. A non-positive delay disables pacing.
func NewDetailFetcher(api domain.VideoAPI, delay time.Duration, logger *zap.Logger) *DetailFetcher {
	return &DetailFetcher{
		api:    api,
		delay:  delay,
		logger: logger,
	}
}

// Fetch returns the detail records for ids, concatenated in batch order.
// A failed batch is logged and stops the iteration; records already collected are returned.
func (f *DetailFetcher) Fetch(ctx context.Context, ids []string) []domain.DetailRecord {
	results := make([]domain.DetailRecord, 0, len(ids))
	limiter := f.newLimiter()

	for i, batch := range chunk(ids, domain.MaxPageSize) {
		if err := limiter.Wait(ctx); err != nil {
			f.logger.Warn("detail fetch interrupted",
				zap.Int("batch", i),
				zap.Int("collected", len(results)),
				zap.Error(err),
			)

			break
		}

		details, err := f.api.VideoDetails(ctx, batch)
		if err != nil {
			f.logger.Warn("detail batch failed, returning partial results",
				zap.Int("batch", i),
				zap.Int("batch_size", len(batch)),
				zap.Int("collected", len(results)),
				zap.Error(err),
			)

			break
		}

		results = append(results, details...)
	}

	f.logger.Debug("detail fetch completed",
		zap.Int("requested", len(ids)),
		zap.Int("returned", len(results)),
	)

	return results
}

// newLimiter paces calls so that consecutive batches are at least delay apart.
// The first call is never delayed.
func (f *DetailFetcher) newLimiter() *rate.Limiter {
	if f.delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}

	return rate.NewLimiter(rate.Every(f.delay), 1)
}

// chunk splits ids into consecutive slices of at most size elements.
func chunk(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}

	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end])
	}

	return batches
}
