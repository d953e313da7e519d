package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReferralLevel string

const (
	ReferralLevelDirect   ReferralLevel = "direct"
	ReferralLevelIndirect ReferralLevel = "indirect"
)

type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusCompleted ReferralStatus = "completed"
)

type Referral struct {
	ID             string
	ReferrerID     string
	ReferredUserID string
	Level          ReferralLevel
	BonusAmount    decimal.Decimal
	Status         ReferralStatus
	CreatedAt      time.Time
}

// ReferralCredit is one bonus posting against the referral ledger.
type ReferralCredit struct {
	ReferrerID     string
	ReferredUserID string
	Level          ReferralLevel
	BonusAmount    decimal.Decimal
	ReferenceID    string
}
