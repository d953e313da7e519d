package service_interfaces

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
)

type WalletService interface {
	GetWallet(ctx context.Context, userID string) (commons.Response[models.WalletResponse], error)
	RequestWithdrawal(ctx context.Context, userID string, req models.WithdrawalRequest) (commons.Response[models.WithdrawalResponse], error)
}
