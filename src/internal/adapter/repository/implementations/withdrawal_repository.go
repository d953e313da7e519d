package implementations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
)

const withdrawalColumns = `id, user_id, amount, bank_name, bank_account_number, ifsc_code, account_holder_name,
	status, admin_notes, processed_at, created_at, updated_at`

type WithdrawalRepository struct {
	db *sql.DB
}

func NewWithdrawalRepository(db *sql.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// CreateWithHold debits the wallet and records the pending withdrawal in one transaction.
func (r *WithdrawalRepository) CreateWithHold(ctx context.Context, withdrawal domain.Withdrawal) (domain.Withdrawal, error) {
	logger.Info("withdrawal repository create with hold", logger.Fields{
		"userId": withdrawal.UserID,
		"amount": withdrawal.Amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("withdrawal repository begin tx failed", err, nil)
		return domain.Withdrawal{}, fmt.Errorf("begin withdrawal transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = lockUser(ctx, tx, withdrawal.UserID); err != nil {
		return domain.Withdrawal{}, err
	}

	if err = updateUserBalance(ctx, tx, withdrawal.UserID, withdrawal.Amount, domain.BalanceOperationSubtract); err != nil {
		return domain.Withdrawal{}, err
	}

	const insertWithdrawal = `
INSERT INTO withdrawals (user_id, amount, bank_name, bank_account_number, ifsc_code, account_holder_name, status)
VALUES ($1, $2::numeric, $3, $4, $5, $6, 'pending')
RETURNING ` + withdrawalColumns

	var created domain.Withdrawal
	if err = scanWithdrawal(tx.QueryRowContext(
		ctx,
		insertWithdrawal,
		withdrawal.UserID,
		withdrawal.Amount,
		withdrawal.BankName,
		withdrawal.BankAccountNumber,
		withdrawal.IFSCCode,
		withdrawal.AccountHolderName,
	), &created); err != nil {
		err = translateError("insert withdrawal", err)
		return domain.Withdrawal{}, err
	}

	description := "Withdrawal to " + created.BankName
	if err = insertTransaction(ctx, tx, domain.Transaction{
		UserID:      created.UserID,
		Amount:      created.Amount,
		Type:        domain.TransactionTypeWithdrawal,
		Status:      domain.TransactionStatusPending,
		Description: &description,
		ReferenceID: &created.ID,
	}); err != nil {
		return domain.Withdrawal{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("withdrawal repository commit tx failed", err, nil)
		return domain.Withdrawal{}, fmt.Errorf("commit withdrawal transaction: %w", err)
	}

	logger.Info("withdrawal repository create with hold success", logger.Fields{
		"withdrawalId": created.ID,
		"userId":       created.UserID,
	})
	return created, nil
}

func (r *WithdrawalRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Withdrawal, error) {
	const query = `
SELECT ` + withdrawalColumns + `
FROM withdrawals
WHERE user_id = $1
ORDER BY created_at DESC`

	return r.list(ctx, "list withdrawals", query, userID)
}

func (r *WithdrawalRepository) ListPending(ctx context.Context, limit int) ([]domain.Withdrawal, error) {
	const query = `
SELECT ` + withdrawalColumns + `
FROM withdrawals
WHERE status = 'pending'
ORDER BY created_at ASC
LIMIT $1`

	return r.list(ctx, "list pending withdrawals", query, limit)
}

func (r *WithdrawalRepository) list(ctx context.Context, op string, query string, args ...any) ([]domain.Withdrawal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("withdrawal repository "+op+" failed", err, nil)
		return nil, translateError(op, err)
	}
	defer rows.Close()

	withdrawals := make([]domain.Withdrawal, 0)
	for rows.Next() {
		var withdrawal domain.Withdrawal
		if err := scanWithdrawal(rows, &withdrawal); err != nil {
			return nil, translateError(op, err)
		}
		withdrawals = append(withdrawals, withdrawal)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(op, err)
	}

	return withdrawals, nil
}

// Process settles a pending withdrawal. Rejection returns the held amount to the wallet.
func (r *WithdrawalRepository) Process(ctx context.Context, withdrawalID string, action domain.WithdrawalAction, adminNotes *string) (domain.Withdrawal, error) {
	logger.Info("withdrawal repository process", logger.Fields{
		"withdrawalId": withdrawalID,
		"action":       action,
	})

	var (
		nextStatus            domain.WithdrawalStatus
		nextTransactionStatus domain.TransactionStatus
	)
	switch action {
	case domain.WithdrawalActionApprove:
		nextStatus = domain.WithdrawalStatusCompleted
		nextTransactionStatus = domain.TransactionStatusCompleted
	case domain.WithdrawalActionReject:
		nextStatus = domain.WithdrawalStatusRejected
		nextTransactionStatus = domain.TransactionStatusFailed
	default:
		return domain.Withdrawal{}, fmt.Errorf("unsupported withdrawal action %q", action)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("withdrawal repository begin tx failed", err, nil)
		return domain.Withdrawal{}, fmt.Errorf("begin withdrawal processing transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current domain.Withdrawal
	if err = scanWithdrawal(tx.QueryRowContext(
		ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1 FOR UPDATE`,
		withdrawalID,
	), &current); err != nil {
		err = translateError("lock withdrawal", err)
		return domain.Withdrawal{}, err
	}
	if current.Status != domain.WithdrawalStatusPending {
		err = domain.ErrInvalidStateTransition
		return domain.Withdrawal{}, err
	}

	if action == domain.WithdrawalActionReject {
		if err = lockUser(ctx, tx, current.UserID); err != nil {
			return domain.Withdrawal{}, err
		}
		if err = updateUserBalance(ctx, tx, current.UserID, current.Amount, domain.BalanceOperationAdd); err != nil {
			return domain.Withdrawal{}, err
		}
	}

	const settle = `
UPDATE withdrawals
SET status = $2,
	admin_notes = $3,
	processed_at = NOW(),
	updated_at = NOW()
WHERE id = $1
RETURNING ` + withdrawalColumns

	var updated domain.Withdrawal
	if err = scanWithdrawal(tx.QueryRowContext(ctx, settle, withdrawalID, nextStatus, adminNotes), &updated); err != nil {
		err = translateError("settle withdrawal", err)
		return domain.Withdrawal{}, err
	}

	const settleTransaction = `
UPDATE transactions
SET status = $3
WHERE reference_id = $1
  AND type = 'withdrawal'
  AND user_id = $2`
	if _, err = execRequiredRows(ctx, tx, settleTransaction, withdrawalID, current.UserID, nextTransactionStatus); err != nil {
		return domain.Withdrawal{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("withdrawal repository commit tx failed", err, nil)
		return domain.Withdrawal{}, fmt.Errorf("commit withdrawal processing transaction: %w", err)
	}

	logger.Info("withdrawal repository process success", logger.Fields{
		"withdrawalId": updated.ID,
		"status":       updated.Status,
	})
	return updated, nil
}

func scanWithdrawal(row rowScanner, withdrawal *domain.Withdrawal) error {
	var (
		adminNotes  sql.NullString
		processedAt sql.NullTime
	)
	if err := row.Scan(
		&withdrawal.ID,
		&withdrawal.UserID,
		&withdrawal.Amount,
		&withdrawal.BankName,
		&withdrawal.BankAccountNumber,
		&withdrawal.IFSCCode,
		&withdrawal.AccountHolderName,
		&withdrawal.Status,
		&adminNotes,
		&processedAt,
		&withdrawal.CreatedAt,
		&withdrawal.UpdatedAt,
	); err != nil {
		return err
	}

	withdrawal.AdminNotes = nullableString(adminNotes)
	if processedAt.Valid {
		value := processedAt.Time
		withdrawal.ProcessedAt = &value
	}
	return nil
}
