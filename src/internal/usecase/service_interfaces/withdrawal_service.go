package service_interfaces

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
)

type WithdrawalService interface {
	ListPendingWithdrawals(ctx context.Context, limit int) (commons.Response[[]models.WithdrawalResponse], error)
	ProcessWithdrawal(ctx context.Context, req models.ProcessWithdrawalRequest) (commons.Response[models.WithdrawalResponse], error)
}
