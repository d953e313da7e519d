package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidCharge = errors.New("invalid charge request")

type ChargeRequest struct {
	UserID string
	Amount decimal.Decimal
	Method domain.PaymentMethod
}

type Receipt struct {
	Reference string
	Amount    decimal.Decimal
	Method    domain.PaymentMethod
	ChargedAt time.Time
}

// SimulatedGateway approves every well-formed charge after an optional delay.
type SimulatedGateway struct {
	latency time.Duration
}

func NewSimulatedGateway(latency time.Duration) *SimulatedGateway {
	return &SimulatedGateway{latency: latency}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	logger.Info("payment gateway charge request", logger.Fields{
		"userId": req.UserID,
		"amount": req.Amount,
		"method": req.Method,
	})

	if strings.TrimSpace(req.UserID) == "" {
		return Receipt{}, fmt.Errorf("%w: userId is required", ErrInvalidCharge)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return Receipt{}, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidCharge)
	}
	switch req.Method {
	case domain.PaymentMethodCard, domain.PaymentMethodUPI, domain.PaymentMethodNetBanking:
	default:
		return Receipt{}, fmt.Errorf("%w: unsupported payment method %q", ErrInvalidCharge, req.Method)
	}

	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Receipt{}, fmt.Errorf("payment charge cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	receipt := Receipt{
		Reference: "PAY-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")),
		Amount:    req.Amount,
		Method:    req.Method,
		ChargedAt: time.Now().UTC(),
	}

	logger.Info("payment gateway charge success", logger.Fields{
		"userId":    req.UserID,
		"reference": receipt.Reference,
	})
	return receipt, nil
}

// Refund voids a charge whose subscription could not be activated.
func (g *SimulatedGateway) Refund(ctx context.Context, receipt Receipt) error {
	logger.Info("payment gateway refund request", logger.Fields{
		"reference": receipt.Reference,
		"amount":    receipt.Amount,
	})

	if !strings.HasPrefix(receipt.Reference, "PAY-") {
		return fmt.Errorf("%w: unknown payment reference %q", ErrInvalidCharge, receipt.Reference)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("payment refund cancelled: %w", err)
	}

	logger.Info("payment gateway refund success", logger.Fields{
		"reference": receipt.Reference,
	})
	return nil
}
