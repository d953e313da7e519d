package models

import (
	"errors"
	"strings"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
)

type ProcessWithdrawalRequest struct {
	WithdrawalID string `json:"withdrawalId"`
	Action       string `json:"action"`
	AdminNotes   string `json:"adminNotes,omitempty"`
}

func (r ProcessWithdrawalRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.WithdrawalID) == "" {
		errs = append(errs, "withdrawalId is required")
	}
	switch domain.WithdrawalAction(strings.ToLower(strings.TrimSpace(r.Action))) {
	case domain.WithdrawalActionApprove, domain.WithdrawalActionReject:
	default:
		errs = append(errs, "action must be approve or reject")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type ReviewKYCRequest struct {
	UserID  string `json:"userId"`
	Approve bool   `json:"approve"`
}

func (r ReviewKYCRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("userId is required")
	}
	return nil
}

type ReconcileResponse struct {
	UserID        string `json:"userId"`
	Balance       string `json:"balance"`
	LedgerBalance string `json:"ledgerBalance"`
	Consistent    bool   `json:"consistent"`
}
