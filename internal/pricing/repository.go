package pricing

import (
	"context"
	"time"

	"gorm.io/gorm"

	"driftwood/pkg/cache"
)

const (
	ratesCacheKey = "pricing:active_rates"
	ratesCacheTTL = 5 * time.Minute
)

// Repository provides read access to seasonal rate configuration.
type Repository interface {
	ListActiveRates(ctx context.Context) ([]SeasonalRate, error)
}

type repository struct {
	db    *gorm.DB
	cache cache.Service
}

// NewRepository creates a seasonal-rate repository. The cache service is
// optional; pass nil to read straight through to the database (tests do
// this to avoid stale rate fixtures).
func NewRepository(db *gorm.DB, cacheService cache.Service) Repository {
	return &repository{
		db:    db,
		cache: cacheService,
	}
}

func (r *repository) ListActiveRates(ctx context.Context) ([]SeasonalRate, error) {
	if r.cache != nil {
		var cached []SeasonalRate
		if err := r.cache.Get(ctx, ratesCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var rates []SeasonalRate
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("start_date ASC, created_at ASC").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		// Best effort; a failed cache write never fails the read.
		_ = r.cache.Set(ctx, ratesCacheKey, rates, ratesCacheTTL)
	}

	return rates, nil
}
