package implementations

import (
	"context"
	"database/sql"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Transaction, error) {
	const query = `
SELECT id, user_id, amount, type, status, description, reference_id, created_at
FROM transactions
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.Error("transaction repository list failed", err, logger.Fields{
			"userId": userID,
		})
		return nil, translateError("list transactions", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var (
			entry       domain.Transaction
			description sql.NullString
			referenceID sql.NullString
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Amount,
			&entry.Type,
			&entry.Status,
			&description,
			&referenceID,
			&entry.CreatedAt,
		); err != nil {
			return nil, translateError("scan transaction", err)
		}
		entry.Description = nullableString(description)
		entry.ReferenceID = nullableString(referenceID)
		transactions = append(transactions, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError("iterate transactions", err)
	}

	return transactions, nil
}
