package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/shopspring/decimal"
)

func TestChargeReturnsReference(t *testing.T) {
	receipt, err := NewSimulatedGateway(0).Charge(context.Background(), ChargeRequest{
		UserID: "user-1",
		Amount: decimal.NewFromInt(1000),
		Method: domain.PaymentMethodUPI,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.HasPrefix(receipt.Reference, "PAY-") {
		t.Fatalf("expected PAY- reference, got %q", receipt.Reference)
	}
	if !receipt.Amount.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected amount 1000, got %s", receipt.Amount)
	}
}

func TestChargeRejectsUnknownMethod(t *testing.T) {
	_, err := NewSimulatedGateway(0).Charge(context.Background(), ChargeRequest{
		UserID: "user-1",
		Amount: decimal.NewFromInt(1000),
		Method: domain.PaymentMethod("cash"),
	})
	if !errors.Is(err, ErrInvalidCharge) {
		t.Fatalf("expected ErrInvalidCharge, got %v", err)
	}
}

func TestChargeHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulatedGateway(time.Minute).Charge(ctx, ChargeRequest{
		UserID: "user-1",
		Amount: decimal.NewFromInt(1000),
		Method: domain.PaymentMethodCard,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRefundRequiresKnownReference(t *testing.T) {
	gateway := NewSimulatedGateway(0)
	if err := gateway.Refund(context.Background(), Receipt{Reference: "PAY-ABC"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := gateway.Refund(context.Background(), Receipt{Reference: "bogus"}); !errors.Is(err, ErrInvalidCharge) {
		t.Fatalf("expected ErrInvalidCharge, got %v", err)
	}
}
