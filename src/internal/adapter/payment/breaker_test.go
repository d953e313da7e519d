package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/shopspring/decimal"
)

type chargerStub struct {
	calls    int
	err      error
	refunded []string
}

func (s *chargerStub) Charge(_ context.Context, req ChargeRequest) (Receipt, error) {
	s.calls++
	if s.err != nil {
		return Receipt{}, s.err
	}
	return Receipt{Reference: "PAY-1", Amount: req.Amount, Method: req.Method}, nil
}

func (s *chargerStub) Refund(_ context.Context, receipt Receipt) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.refunded = append(s.refunded, receipt.Reference)
	return nil
}

func validCharge() ChargeRequest {
	return ChargeRequest{UserID: "user-1", Amount: decimal.NewFromInt(1000), Method: domain.PaymentMethodCard}
}

func TestBreakerGatewayPassesThrough(t *testing.T) {
	stub := &chargerStub{}
	receipt, err := NewBreakerGateway(stub, BreakerSettings{}).Charge(context.Background(), validCharge())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if receipt.Reference != "PAY-1" {
		t.Fatalf("expected PAY-1, got %q", receipt.Reference)
	}
}

func TestBreakerGatewayOpensAfterFailures(t *testing.T) {
	stub := &chargerStub{err: errors.New("upstream 502")}
	gateway := NewBreakerGateway(stub, BreakerSettings{MaxConsecutiveFailures: 2, OpenTimeout: time.Minute})

	for i := 0; i < 2; i++ {
		if _, err := gateway.Charge(context.Background(), validCharge()); err == nil {
			t.Fatal("expected upstream error")
		}
	}

	_, err := gateway.Charge(context.Background(), validCharge())
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
	if stub.calls != 2 {
		t.Fatalf("expected open breaker to skip upstream, got %d calls", stub.calls)
	}
	if gateway.State() != "open" {
		t.Fatalf("expected open state, got %s", gateway.State())
	}
}

func TestBreakerGatewayIgnoresInvalidCharges(t *testing.T) {
	gateway := NewBreakerGateway(NewSimulatedGateway(0), BreakerSettings{MaxConsecutiveFailures: 1})
	bad := ChargeRequest{UserID: "user-1", Amount: decimal.NewFromInt(1000), Method: domain.PaymentMethod("cash")}

	for i := 0; i < 3; i++ {
		if _, err := gateway.Charge(context.Background(), bad); !errors.Is(err, ErrInvalidCharge) {
			t.Fatalf("expected ErrInvalidCharge, got %v", err)
		}
	}
	if gateway.State() != "closed" {
		t.Fatalf("expected closed state, got %s", gateway.State())
	}
}

func TestBreakerGatewayRefundPassesThrough(t *testing.T) {
	stub := &chargerStub{}
	if err := NewBreakerGateway(stub, BreakerSettings{}).Refund(context.Background(), Receipt{Reference: "PAY-1"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(stub.refunded) != 1 || stub.refunded[0] != "PAY-1" {
		t.Fatalf("expected PAY-1 refunded, got %v", stub.refunded)
	}
}

func TestBreakerGatewayRefundRejectedWhileOpen(t *testing.T) {
	stub := &chargerStub{err: errors.New("upstream 502")}
	gateway := NewBreakerGateway(stub, BreakerSettings{MaxConsecutiveFailures: 1, OpenTimeout: time.Minute})

	if _, err := gateway.Charge(context.Background(), validCharge()); err == nil {
		t.Fatal("expected upstream error")
	}
	if err := gateway.Refund(context.Background(), Receipt{Reference: "PAY-1"}); !errors.Is(err, ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
}
