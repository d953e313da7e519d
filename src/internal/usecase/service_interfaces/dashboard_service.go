package service_interfaces

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (commons.Response[models.DashboardResponse], error)
	ListReferrals(ctx context.Context, userID string) (commons.Response[[]models.ReferralResponse], error)
}
