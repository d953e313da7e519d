package implementations

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...any) error
}

// translateError maps driver errors onto domain sentinels, wrapping everything else with op.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrRecordNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		switch pqErr.Constraint {
		case "users_email_key":
			return domain.ErrDuplicateEmail
		case "users_referral_code_key":
			return domain.ErrDuplicateReferralCode
		case "uq_subscriptions_one_active_per_user":
			return domain.ErrAlreadySubscribed
		default:
			return fmt.Errorf("%s: %w", op, domain.ErrDuplicateRecord)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
