package repo_interfaces

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
)

type ReferralRepository interface {
	ListByReferrer(ctx context.Context, referrerID string) ([]domain.Referral, error)
	CountByReferrer(ctx context.Context, referrerID string, level domain.ReferralLevel) (int, error)
}
