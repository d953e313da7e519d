package services

import (
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/shopspring/decimal"
)

func formatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339)
}

func mapUserToProfile(user domain.User) models.ProfileResponse {
	return models.ProfileResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Mobile:       user.Mobile,
		ReferralCode: user.ReferralCode,
		ReferredBy:   user.ReferredBy,
		KYCStatus:    string(user.KYCStatus),
		IsActive:     user.IsActive,
		CanWithdraw:  user.CanWithdraw,
		CreatedAt:    formatTime(user.CreatedAt),
	}
}

func mapSubscriptionToResponse(subscription domain.Subscription) models.SubscriptionResponse {
	return models.SubscriptionResponse{
		ID:          subscription.ID,
		PlanType:    subscription.PlanType,
		PlanPrice:   formatAmount(subscription.PlanPrice),
		StartDate:   formatTime(subscription.StartDate),
		EndDate:     formatTime(subscription.EndDate),
		Status:      string(subscription.Status),
		AutoRenewal: subscription.AutoRenewal,
	}
}

func mapTransactionToResponse(transaction domain.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		ID:          transaction.ID,
		Amount:      formatAmount(transaction.Amount),
		Type:        string(transaction.Type),
		Status:      string(transaction.Status),
		Description: transaction.Description,
		ReferenceID: transaction.ReferenceID,
		CreatedAt:   formatTime(transaction.CreatedAt),
	}
}

func mapWithdrawalToResponse(withdrawal domain.Withdrawal) models.WithdrawalResponse {
	response := models.WithdrawalResponse{
		ID:                withdrawal.ID,
		UserID:            withdrawal.UserID,
		Amount:            formatAmount(withdrawal.Amount),
		BankName:          withdrawal.BankName,
		BankAccountNumber: withdrawal.BankAccountNumber,
		IFSCCode:          withdrawal.IFSCCode,
		AccountHolderName: withdrawal.AccountHolderName,
		Status:            string(withdrawal.Status),
		AdminNotes:        withdrawal.AdminNotes,
		CreatedAt:         formatTime(withdrawal.CreatedAt),
	}
	if withdrawal.ProcessedAt != nil {
		processedAt := formatTime(*withdrawal.ProcessedAt)
		response.ProcessedAt = &processedAt
	}
	return response
}

func mapReferralToResponse(referral domain.Referral) models.ReferralResponse {
	return models.ReferralResponse{
		ID:             referral.ID,
		ReferredUserID: referral.ReferredUserID,
		Level:          string(referral.Level),
		BonusAmount:    formatAmount(referral.BonusAmount),
		Status:         string(referral.Status),
		CreatedAt:      formatTime(referral.CreatedAt),
	}
}
