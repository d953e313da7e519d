package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

type Subscription struct {
	ID          string
	UserID      string
	PlanType    string
	PlanPrice   decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
	Status      SubscriptionStatus
	AutoRenewal bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s Subscription) IsActiveAt(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && now.Before(s.EndDate)
}
