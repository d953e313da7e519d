package implementations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
	"github.com/shopspring/decimal"
)

// LedgerRepository owns every posting that moves wallet money.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// AddReferralBonus records the referral and credits the referrer in one transaction.
// It returns false without side effects when the pair was already credited.
func (r *LedgerRepository) AddReferralBonus(ctx context.Context, credit domain.ReferralCredit, minDirectReferrals int) (bool, error) {
	logger.Info("ledger repository add referral bonus", logger.Fields{
		"referrerId":     credit.ReferrerID,
		"referredUserId": credit.ReferredUserID,
		"level":          credit.Level,
		"bonusAmount":    credit.BonusAmount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger repository begin tx failed", err, nil)
		return false, fmt.Errorf("begin referral bonus transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Lock the referrer first so concurrent credits serialise on the wallet row.
	if err = lockUser(ctx, tx, credit.ReferrerID); err != nil {
		return false, err
	}

	const insertReferral = `
INSERT INTO referrals (referrer_id, referred_user_id, level, bonus_amount, status)
VALUES ($1, $2, $3, $4::numeric, 'completed')
ON CONFLICT (referrer_id, referred_user_id) DO NOTHING`
	result, err := tx.ExecContext(ctx, insertReferral, credit.ReferrerID, credit.ReferredUserID, credit.Level, credit.BonusAmount)
	if err != nil {
		err = translateError("insert referral", err)
		return false, err
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		err = translateError("insert referral rows affected", err)
		return false, err
	}
	if inserted == 0 {
		_ = tx.Rollback()
		logger.Info("ledger repository referral already credited", logger.Fields{
			"referrerId":     credit.ReferrerID,
			"referredUserId": credit.ReferredUserID,
		})
		return false, nil
	}

	if credit.BonusAmount.GreaterThan(decimal.Zero) {
		if err = updateUserBalance(ctx, tx, credit.ReferrerID, credit.BonusAmount, domain.BalanceOperationAdd); err != nil {
			return false, err
		}

		const bumpBonus = `
UPDATE users
SET referral_bonus = referral_bonus + $2::numeric,
	updated_at = NOW()
WHERE id = $1`
		if _, err = execRequiredRows(ctx, tx, bumpBonus, credit.ReferrerID, credit.BonusAmount); err != nil {
			return false, err
		}

		description := fmt.Sprintf("%s referral bonus", credit.Level)
		if err = insertTransaction(ctx, tx, domain.Transaction{
			UserID:      credit.ReferrerID,
			Amount:      credit.BonusAmount,
			Type:        domain.TransactionTypeReferralBonus,
			Status:      domain.TransactionStatusCompleted,
			Description: &description,
			ReferenceID: optionalString(credit.ReferenceID),
		}); err != nil {
			return false, err
		}
	}

	const refreshEligibility = `
UPDATE users
SET can_withdraw = (
		SELECT COUNT(1) FROM referrals
		WHERE referrer_id = $1 AND level = 'direct'
	) >= $2,
	updated_at = NOW()
WHERE id = $1`
	if _, err = execRequiredRows(ctx, tx, refreshEligibility, credit.ReferrerID, minDirectReferrals); err != nil {
		return false, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("ledger repository commit tx failed", err, nil)
		return false, fmt.Errorf("commit referral bonus transaction: %w", err)
	}

	logger.Info("ledger repository add referral bonus success", logger.Fields{
		"referrerId":     credit.ReferrerID,
		"referredUserId": credit.ReferredUserID,
	})
	return true, nil
}

// Reconcile returns the stored balance next to the balance implied by the transaction log.
func (r *LedgerRepository) Reconcile(ctx context.Context, userID string) (decimal.Decimal, decimal.Decimal, error) {
	const query = `
SELECT u.balance,
       COALESCE((
           SELECT SUM(CASE
                      WHEN t.type = 'referral_bonus' AND t.status = 'completed' THEN t.amount
                      WHEN t.type = 'withdrawal' AND t.status IN ('pending', 'completed') THEN -t.amount
                      ELSE 0
                  END)
           FROM transactions t
           WHERE t.user_id = u.id
       ), 0)
FROM users u
WHERE u.id = $1`

	var balance, ledgerTotal decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&balance, &ledgerTotal); err != nil {
		return decimal.Zero, decimal.Zero, translateError("reconcile ledger", err)
	}

	return balance, ledgerTotal, nil
}

func lockUser(ctx context.Context, tx *sql.Tx, userID string) error {
	var id string
	if err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id); err != nil {
		return translateError("lock user", err)
	}
	return nil
}

// updateUserBalance is the single balance mutation used by every posting.
func updateUserBalance(ctx context.Context, tx *sql.Tx, userID string, amount decimal.Decimal, operation domain.BalanceOperation) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("balance change must be greater than zero")
	}

	switch operation {
	case domain.BalanceOperationSubtract:
		const debit = `
UPDATE users
SET balance = balance - $2::numeric,
	updated_at = NOW()
WHERE id = $1
  AND balance >= $2::numeric`
		result, err := tx.ExecContext(ctx, debit, userID, amount)
		if err != nil {
			return translateError("debit balance", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return translateError("debit balance rows affected", err)
		}
		if rows == 0 {
			return domain.ErrInsufficientBalance
		}
		return nil
	case domain.BalanceOperationAdd, "":
		const credit = `
UPDATE users
SET balance = balance + $2::numeric,
	updated_at = NOW()
WHERE id = $1`
		_, err := execRequiredRows(ctx, tx, credit, userID, amount)
		return err
	default:
		return fmt.Errorf("unsupported balance operation %q", operation)
	}
}

func insertTransaction(ctx context.Context, tx *sql.Tx, entry domain.Transaction) error {
	const query = `
INSERT INTO transactions (user_id, amount, type, status, description, reference_id)
VALUES ($1, $2::numeric, $3, $4, $5, $6)`
	if _, err := tx.ExecContext(ctx, query, entry.UserID, entry.Amount, entry.Type, entry.Status, entry.Description, entry.ReferenceID); err != nil {
		return translateError("insert transaction", err)
	}
	return nil
}

func execRequiredRows(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("execute transaction statement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	if rows == 0 {
		return 0, domain.ErrRecordNotFound
	}
	return rows, nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
