package jobs

import (
	"context"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/logger"
)

type SubscriptionExpirer interface {
	ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error)
}

// ExpireSubscriptions flips active subscriptions past their end date to expired.
func ExpireSubscriptions(expirer SubscriptionExpirer, now func() time.Time) Task {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context) error {
		expired, err := expirer.ExpireSubscriptions(ctx, now().UTC())
		if err != nil {
			return err
		}
		if expired > 0 {
			logger.Info("subscriptions expired", logger.Fields{
				"count": expired,
			})
		}
		return nil
	}
}

type Sweeper interface {
	Sweep() int
}

// SweepRateLimiter drops idle per-client buckets.
func SweepRateLimiter(sweeper Sweeper) Task {
	return func(ctx context.Context) error {
		if removed := sweeper.Sweep(); removed > 0 {
			logger.Info("rate limiter swept", logger.Fields{
				"removed": removed,
			})
		}
		return nil
	}
}
