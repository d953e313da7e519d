package implementations

import (
	"context"
	"database/sql"
	"errors"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
)

const userColumns = `id, name, email, mobile, password_hash, aadhaar_number, pan_number, aadhaar_image_path, pan_image_path,
	referral_code, referred_by, balance, referral_bonus, can_withdraw, is_active, kyc_status, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	logger.Info("user repository create", logger.Fields{
		"userId":       user.ID,
		"email":        user.Email,
		"referralCode": user.ReferralCode,
	})

	const query = `
INSERT INTO users (
	id,
	name,
	email,
	mobile,
	password_hash,
	referral_code,
	referred_by,
	kyc_status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userColumns

	var created domain.User
	if err := scanUser(r.db.QueryRowContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.Mobile,
		user.PasswordHash,
		user.ReferralCode,
		user.ReferredBy,
		user.KYCStatus,
	), &created); err != nil {
		translated := translateError("create user", err)
		logger.Error("user repository create failed", translated, logger.Fields{
			"userId": user.ID,
		})
		return domain.User{}, translated
	}

	logger.Info("user repository create success", logger.Fields{
		"userId":       created.ID,
		"referralCode": created.ReferralCode,
	})

	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, "id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, "email", `SELECT `+userColumns+` FROM users WHERE email = LOWER($1)`, email)
}

func (r *UserRepository) GetByReferralCode(ctx context.Context, referralCode string) (domain.User, error) {
	return r.getOne(ctx, "referral_code", `SELECT `+userColumns+` FROM users WHERE referral_code = UPPER($1)`, referralCode)
}

func (r *UserRepository) getOne(ctx context.Context, key string, query string, value string) (domain.User, error) {
	var user domain.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, value), &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("user repository record not found", logger.Fields{
				"lookup": key,
			})
			return domain.User{}, domain.ErrRecordNotFound
		}
		logger.Error("user repository get failed", err, logger.Fields{
			"lookup": key,
		})
		return domain.User{}, translateError("get user by "+key, err)
	}

	return user, nil
}

// AttachReferrer sets referred_by only while it is still empty.
func (r *UserRepository) AttachReferrer(ctx context.Context, userID string, referrerID string) error {
	logger.Info("user repository attach referrer", logger.Fields{
		"userId":     userID,
		"referrerId": referrerID,
	})

	const query = `
UPDATE users
SET referred_by = $2,
	updated_at = NOW()
WHERE id = $1
  AND referred_by IS NULL
  AND id <> $2`

	result, err := r.db.ExecContext(ctx, query, userID, referrerID)
	if err != nil {
		logger.Error("user repository attach referrer failed", err, logger.Fields{
			"userId": userID,
		})
		return translateError("attach referrer", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translateError("attach referrer rows affected", err)
	}
	if rows == 0 {
		return domain.ErrInvalidStateTransition
	}

	return nil
}

func (r *UserRepository) SubmitKYC(ctx context.Context, userID string, docs domain.KYCDocuments) (domain.User, error) {
	logger.Info("user repository submit kyc", logger.Fields{
		"userId": userID,
	})

	const query = `
UPDATE users
SET aadhaar_number = $2,
	pan_number = $3,
	aadhaar_image_path = $4,
	pan_image_path = $5,
	kyc_status = 'submitted',
	updated_at = NOW()
WHERE id = $1
  AND kyc_status IN ('pending', 'rejected')
RETURNING ` + userColumns

	var updated domain.User
	err := scanUser(r.db.QueryRowContext(
		ctx,
		query,
		userID,
		docs.AadhaarNumber,
		docs.PANNumber,
		docs.AadhaarImagePath,
		docs.PANImagePath,
	), &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, r.kycMiss(ctx, userID)
		}
		logger.Error("user repository submit kyc failed", err, logger.Fields{
			"userId": userID,
		})
		return domain.User{}, translateError("submit kyc", err)
	}

	return updated, nil
}

func (r *UserRepository) TransitionKYC(ctx context.Context, userID string, from domain.KYCStatus, to domain.KYCStatus) (domain.User, error) {
	logger.Info("user repository transition kyc", logger.Fields{
		"userId": userID,
		"from":   from,
		"to":     to,
	})

	const query = `
UPDATE users
SET kyc_status = $3,
	updated_at = NOW()
WHERE id = $1
  AND kyc_status = $2
RETURNING ` + userColumns

	var updated domain.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, userID, from, to), &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, r.kycMiss(ctx, userID)
		}
		logger.Error("user repository transition kyc failed", err, logger.Fields{
			"userId": userID,
		})
		return domain.User{}, translateError("transition kyc", err)
	}

	return updated, nil
}

// kycMiss tells a missing user apart from a user in the wrong KYC state.
func (r *UserRepository) kycMiss(ctx context.Context, userID string) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return translateError("check user exists", err)
	}
	if !exists {
		return domain.ErrRecordNotFound
	}
	return domain.ErrInvalidStateTransition
}

func scanUser(row rowScanner, user *domain.User) error {
	var referredBy sql.NullString
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Mobile,
		&user.PasswordHash,
		&user.AadhaarNumber,
		&user.PANNumber,
		&user.AadhaarImagePath,
		&user.PANImagePath,
		&user.ReferralCode,
		&referredBy,
		&user.Balance,
		&user.ReferralBonus,
		&user.CanWithdraw,
		&user.IsActive,
		&user.KYCStatus,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return err
	}

	user.ReferredBy = nullableString(referredBy)
	return nil
}
