package service_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, userID string, req models.SubscribeRequest) (commons.Response[models.SubscriptionResponse], error)
	GetSubscription(ctx context.Context, userID string) (commons.Response[models.SubscriptionResponse], error)
	ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error)
}
