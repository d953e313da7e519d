package service_interfaces

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
)

type LedgerService interface {
	Reconcile(ctx context.Context, userID string) (commons.Response[models.ReconcileResponse], error)
}
