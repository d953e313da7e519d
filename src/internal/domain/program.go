package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProgramRules are the money and eligibility numbers of the CFC program.
type ProgramRules struct {
	SubscriptionPrice      decimal.Decimal
	PlanType               string
	PlanDuration           time.Duration
	DirectBonus            decimal.Decimal
	IndirectBonus          decimal.Decimal
	MinReferralsToWithdraw int
	MinWithdrawalAmount    decimal.Decimal
	ReferralCodePrefix     string
	RequireKYCForWithdraw  bool
}

func DefaultProgramRules() ProgramRules {
	return ProgramRules{
		SubscriptionPrice:      decimal.NewFromInt(1000),
		PlanType:               "annual",
		PlanDuration:           365 * 24 * time.Hour,
		DirectBonus:            decimal.NewFromInt(300),
		IndirectBonus:          decimal.NewFromInt(100),
		MinReferralsToWithdraw: 3,
		MinWithdrawalAmount:    decimal.NewFromInt(1),
		ReferralCodePrefix:     "CFC",
		RequireKYCForWithdraw:  false,
	}
}

func (r ProgramRules) BonusFor(level ReferralLevel) decimal.Decimal {
	if level == ReferralLevelIndirect {
		return r.IndirectBonus
	}
	return r.DirectBonus
}

type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
)

var NetBankingBanks = []string{
	"State Bank of India",
	"HDFC Bank",
	"ICICI Bank",
	"Axis Bank",
	"Kotak Mahindra Bank",
	"Punjab National Bank",
}
