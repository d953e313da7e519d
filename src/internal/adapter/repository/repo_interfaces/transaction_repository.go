package repo_interfaces

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
)

type TransactionRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]domain.Transaction, error)
}
