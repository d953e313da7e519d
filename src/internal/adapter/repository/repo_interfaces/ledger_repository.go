package repo_interfaces

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/shopspring/decimal"
)

type LedgerRepository interface {
	AddReferralBonus(ctx context.Context, credit domain.ReferralCredit, minDirectReferrals int) (bool, error)
	Reconcile(ctx context.Context, userID string) (balance decimal.Decimal, ledgerTotal decimal.Decimal, err error)
}
