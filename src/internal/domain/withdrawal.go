package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
)

type Withdrawal struct {
	ID                string
	UserID            string
	Amount            decimal.Decimal
	BankName          string
	BankAccountNumber string
	IFSCCode          string
	AccountHolderName string
	Status            WithdrawalStatus
	AdminNotes        *string
	ProcessedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type WithdrawalAction string

const (
	WithdrawalActionApprove WithdrawalAction = "approve"
	WithdrawalActionReject  WithdrawalAction = "reject"
)
