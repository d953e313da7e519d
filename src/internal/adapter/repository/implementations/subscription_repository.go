package implementations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
)

const subscriptionColumns = `id, user_id, plan_type, plan_price, start_date, end_date, status, auto_renewal, created_at, updated_at`

type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Activate stores the paid subscription, its payment record and flips the user active atomically.
func (r *SubscriptionRepository) Activate(ctx context.Context, subscription domain.Subscription, payment domain.Transaction) (domain.Subscription, error) {
	logger.Info("subscription repository activate", logger.Fields{
		"userId":      subscription.UserID,
		"planType":    subscription.PlanType,
		"planPrice":   subscription.PlanPrice,
		"referenceId": payment.ReferenceID,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("subscription repository begin tx failed", err, nil)
		return domain.Subscription{}, fmt.Errorf("begin subscription transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = lockUser(ctx, tx, subscription.UserID); err != nil {
		return domain.Subscription{}, err
	}

	// A lapsed row the expiry job has not reached yet still holds the one-active slot.
	const expireLapsed = `
UPDATE subscriptions
SET status = 'expired',
	updated_at = NOW()
WHERE user_id = $1
  AND status = 'active'
  AND end_date <= $2`
	if _, err = tx.ExecContext(ctx, expireLapsed, subscription.UserID, subscription.StartDate); err != nil {
		err = translateError("expire lapsed subscription", err)
		return domain.Subscription{}, err
	}

	const insertSubscription = `
INSERT INTO subscriptions (user_id, plan_type, plan_price, start_date, end_date, status, auto_renewal)
VALUES ($1, $2, $3::numeric, $4, $5, 'active', $6)
RETURNING ` + subscriptionColumns

	var created domain.Subscription
	if err = scanSubscription(tx.QueryRowContext(
		ctx,
		insertSubscription,
		subscription.UserID,
		subscription.PlanType,
		subscription.PlanPrice,
		subscription.StartDate,
		subscription.EndDate,
		subscription.AutoRenewal,
	), &created); err != nil {
		err = translateError("insert subscription", err)
		return domain.Subscription{}, err
	}

	if err = insertTransaction(ctx, tx, payment); err != nil {
		return domain.Subscription{}, err
	}

	const activateUser = `
UPDATE users
SET is_active = TRUE,
	updated_at = NOW()
WHERE id = $1`
	if _, err = execRequiredRows(ctx, tx, activateUser, subscription.UserID); err != nil {
		return domain.Subscription{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("subscription repository commit tx failed", err, nil)
		return domain.Subscription{}, fmt.Errorf("commit subscription transaction: %w", err)
	}

	logger.Info("subscription repository activate success", logger.Fields{
		"subscriptionId": created.ID,
		"userId":         created.UserID,
	})
	return created, nil
}

func (r *SubscriptionRepository) GetLatestByUserID(ctx context.Context, userID string) (domain.Subscription, error) {
	const query = `
SELECT ` + subscriptionColumns + `
FROM subscriptions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 1`

	var subscription domain.Subscription
	if err := scanSubscription(r.db.QueryRowContext(ctx, query, userID), &subscription); err != nil {
		return domain.Subscription{}, translateError("get latest subscription", err)
	}
	return subscription, nil
}

// ExpireDue expires lapsed subscriptions and deactivates users left without one.
func (r *SubscriptionRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin expiry transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const expire = `
UPDATE subscriptions
SET status = 'expired',
	updated_at = NOW()
WHERE status = 'active'
  AND end_date <= $1`
	result, err := tx.ExecContext(ctx, expire, now)
	if err != nil {
		err = translateError("expire subscriptions", err)
		return 0, err
	}
	expired, err := result.RowsAffected()
	if err != nil {
		err = translateError("expire subscriptions rows affected", err)
		return 0, err
	}

	const deactivate = `
UPDATE users u
SET is_active = FALSE,
	updated_at = NOW()
WHERE u.is_active = TRUE
  AND NOT EXISTS (
      SELECT 1 FROM subscriptions s
      WHERE s.user_id = u.id AND s.status = 'active'
  )`
	if _, err = tx.ExecContext(ctx, deactivate); err != nil {
		err = translateError("deactivate lapsed users", err)
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit expiry transaction: %w", err)
	}

	logger.Info("subscription repository expire due", logger.Fields{
		"expired": expired,
		"asOf":    now.UTC().Format(time.RFC3339),
	})
	return expired, nil
}

func scanSubscription(row rowScanner, subscription *domain.Subscription) error {
	return row.Scan(
		&subscription.ID,
		&subscription.UserID,
		&subscription.PlanType,
		&subscription.PlanPrice,
		&subscription.StartDate,
		&subscription.EndDate,
		&subscription.Status,
		&subscription.AutoRenewal,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)
}
