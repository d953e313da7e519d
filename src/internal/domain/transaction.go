package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeSubscriptionPayment TransactionType = "subscription_payment"
	TransactionTypeReferralBonus       TransactionType = "referral_bonus"
	TransactionTypeWithdrawal          TransactionType = "withdrawal"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

type Transaction struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Type        TransactionType
	Status      TransactionStatus
	Description *string
	ReferenceID *string
	CreatedAt   time.Time
}

type BalanceOperation string

const (
	BalanceOperationAdd      BalanceOperation = "add"
	BalanceOperationSubtract BalanceOperation = "subtract"
)
