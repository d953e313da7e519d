package models

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

type WithdrawalRequest struct {
	Amount            decimal.Decimal `json:"amount"`
	BankName          string          `json:"bankName"`
	BankAccountNumber string          `json:"bankAccountNumber"`
	IFSCCode          string          `json:"ifscCode"`
	AccountHolderName string          `json:"accountHolderName"`
}

func (r WithdrawalRequest) Validate() error {
	var errs []string

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	if !r.Amount.Equal(r.Amount.Round(2)) {
		errs = append(errs, "amount must have at most 2 decimal places")
	}
	if strings.TrimSpace(r.BankName) == "" {
		errs = append(errs, "bankName is required")
	}
	account := strings.TrimSpace(r.BankAccountNumber)
	if len(account) < 9 || len(account) > 18 || !isDigits(account) {
		errs = append(errs, "bankAccountNumber must be 9 to 18 digits")
	}
	if !ifscPattern.MatchString(strings.ToUpper(strings.TrimSpace(r.IFSCCode))) {
		errs = append(errs, "ifscCode must be a valid IFSC code")
	}
	if strings.TrimSpace(r.AccountHolderName) == "" {
		errs = append(errs, "accountHolderName is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type TransactionResponse struct {
	ID          string  `json:"id"`
	Amount      string  `json:"amount"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Description *string `json:"description,omitempty"`
	ReferenceID *string `json:"referenceId,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

type WithdrawalResponse struct {
	ID                string  `json:"id"`
	UserID            string  `json:"userId"`
	Amount            string  `json:"amount"`
	BankName          string  `json:"bankName"`
	BankAccountNumber string  `json:"bankAccountNumber"`
	IFSCCode          string  `json:"ifscCode"`
	AccountHolderName string  `json:"accountHolderName"`
	Status            string  `json:"status"`
	AdminNotes        *string `json:"adminNotes,omitempty"`
	ProcessedAt       *string `json:"processedAt,omitempty"`
	CreatedAt         string  `json:"createdAt"`
}

type WalletResponse struct {
	Balance      string                `json:"balance"`
	CanWithdraw  bool                  `json:"canWithdraw"`
	Transactions []TransactionResponse `json:"transactions"`
	Withdrawals  []WithdrawalResponse  `json:"withdrawals"`
}
