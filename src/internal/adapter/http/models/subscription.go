package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
)

var (
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	upiPattern        = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9]+$`)
)

type CardDetails struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	HolderName string `json:"holderName"`
}

type SubscribeRequest struct {
	PaymentMethod string       `json:"paymentMethod"`
	Card          *CardDetails `json:"card,omitempty"`
	UPIID         string       `json:"upiId,omitempty"`
	Bank          string       `json:"bank,omitempty"`
	ReferralCode  string       `json:"referralCode,omitempty"`
}

func (r SubscribeRequest) Validate() error {
	return r.ValidateAt(time.Now())
}

// ValidateAt checks the payment details for the chosen method; card expiry is compared against now.
func (r SubscribeRequest) ValidateAt(now time.Time) error {
	var errs []string

	switch domain.PaymentMethod(strings.ToLower(strings.TrimSpace(r.PaymentMethod))) {
	case domain.PaymentMethodCard:
		errs = append(errs, validateCard(r.Card, now)...)
	case domain.PaymentMethodUPI:
		if !upiPattern.MatchString(strings.TrimSpace(r.UPIID)) {
			errs = append(errs, "upiId must look like name@bank")
		}
	case domain.PaymentMethodNetBanking:
		if !isSupportedBank(r.Bank) {
			errs = append(errs, fmt.Sprintf("bank must be one of %s", strings.Join(domain.NetBankingBanks, ", ")))
		}
	case "":
		errs = append(errs, "paymentMethod is required")
	default:
		errs = append(errs, "paymentMethod must be one of card, upi, netbanking")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (r SubscribeRequest) Method() domain.PaymentMethod {
	return domain.PaymentMethod(strings.ToLower(strings.TrimSpace(r.PaymentMethod)))
}

func validateCard(card *CardDetails, now time.Time) []string {
	if card == nil {
		return []string{"card details are required"}
	}

	var errs []string
	number := strings.ReplaceAll(card.CardNumber, " ", "")
	if len(number) < 12 || len(number) > 19 || !isDigits(number) {
		errs = append(errs, "cardNumber must be 12 to 19 digits")
	}

	match := cardExpiryPattern.FindStringSubmatch(strings.TrimSpace(card.Expiry))
	if match == nil {
		errs = append(errs, "expiry must be in MM/YY format")
	} else {
		month, _ := strconv.Atoi(match[1])
		year, _ := strconv.Atoi(match[2])
		// A card stays valid through the last day of its expiry month.
		validUntil := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
		if !now.UTC().Before(validUntil) {
			errs = append(errs, "card has expired")
		}
	}

	cvv := strings.TrimSpace(card.CVV)
	if (len(cvv) != 3 && len(cvv) != 4) || !isDigits(cvv) {
		errs = append(errs, "cvv must be 3 or 4 digits")
	}
	if strings.TrimSpace(card.HolderName) == "" {
		errs = append(errs, "holderName is required")
	}

	return errs
}

func isSupportedBank(bank string) bool {
	bank = strings.TrimSpace(bank)
	for _, supported := range domain.NetBankingBanks {
		if strings.EqualFold(supported, bank) {
			return true
		}
	}
	return false
}

type SubscriptionResponse struct {
	ID               string `json:"id"`
	PlanType         string `json:"planType"`
	PlanPrice        string `json:"planPrice"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Status           string `json:"status"`
	AutoRenewal      bool   `json:"autoRenewal"`
	PaymentReference string `json:"paymentReference,omitempty"`
}
