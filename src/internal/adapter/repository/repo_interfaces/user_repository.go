package repo_interfaces

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByReferralCode(ctx context.Context, referralCode string) (domain.User, error)
	AttachReferrer(ctx context.Context, userID string, referrerID string) error
	SubmitKYC(ctx context.Context, userID string, docs domain.KYCDocuments) (domain.User, error)
	TransitionKYC(ctx context.Context, userID string, from domain.KYCStatus, to domain.KYCStatus) (domain.User, error)
}
