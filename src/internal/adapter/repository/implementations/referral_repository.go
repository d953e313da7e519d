package implementations

import (
	"context"
	"database/sql"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
)

type ReferralRepository struct {
	db *sql.DB
}

func NewReferralRepository(db *sql.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) ListByReferrer(ctx context.Context, referrerID string) ([]domain.Referral, error) {
	const query = `
SELECT id, referrer_id, referred_user_id, level, bonus_amount, status, created_at
FROM referrals
WHERE referrer_id = $1
ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, referrerID)
	if err != nil {
		logger.Error("referral repository list failed", err, logger.Fields{
			"referrerId": referrerID,
		})
		return nil, translateError("list referrals", err)
	}
	defer rows.Close()

	referrals := make([]domain.Referral, 0)
	for rows.Next() {
		var referral domain.Referral
		if err := rows.Scan(
			&referral.ID,
			&referral.ReferrerID,
			&referral.ReferredUserID,
			&referral.Level,
			&referral.BonusAmount,
			&referral.Status,
			&referral.CreatedAt,
		); err != nil {
			return nil, translateError("scan referral", err)
		}
		referrals = append(referrals, referral)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError("iterate referrals", err)
	}

	return referrals, nil
}

func (r *ReferralRepository) CountByReferrer(ctx context.Context, referrerID string, level domain.ReferralLevel) (int, error) {
	var count int
	if err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM referrals WHERE referrer_id = $1 AND level = $2`,
		referrerID,
		level,
	).Scan(&count); err != nil {
		return 0, translateError("count referrals", err)
	}
	return count, nil
}
