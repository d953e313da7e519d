package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
)

type SubscriptionRepository interface {
	Activate(ctx context.Context, subscription domain.Subscription, payment domain.Transaction) (domain.Subscription, error)
	GetLatestByUserID(ctx context.Context, userID string) (domain.Subscription, error)
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}
