package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type KYCStatus string

const (
	KYCStatusPending   KYCStatus = "pending"
	KYCStatusSubmitted KYCStatus = "submitted"
	KYCStatusVerified  KYCStatus = "verified"
	KYCStatusRejected  KYCStatus = "rejected"
)

type User struct {
	ID               string
	Name             string
	Email            string
	Mobile           string
	PasswordHash     string
	AadhaarNumber    string
	PANNumber        string
	AadhaarImagePath string
	PANImagePath     string
	ReferralCode     string
	ReferredBy       *string
	Balance          decimal.Decimal
	ReferralBonus    decimal.Decimal
	CanWithdraw      bool
	IsActive         bool
	KYCStatus        KYCStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// KYCDocuments is the identity evidence a user submits for review.
type KYCDocuments struct {
	AadhaarNumber    string
	PANNumber        string
	AadhaarImagePath string
	PANImagePath     string
}
