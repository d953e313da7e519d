package repo_interfaces

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
)

type WithdrawalRepository interface {
	CreateWithHold(ctx context.Context, withdrawal domain.Withdrawal) (domain.Withdrawal, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.Withdrawal, error)
	ListPending(ctx context.Context, limit int) ([]domain.Withdrawal, error)
	Process(ctx context.Context, withdrawalID string, action domain.WithdrawalAction, adminNotes *string) (domain.Withdrawal, error)
}
