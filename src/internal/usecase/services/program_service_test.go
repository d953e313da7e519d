package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func TestProgramServiceGetProgram(t *testing.T) {
	response, err := services.NewProgramService(domain.DefaultProgramRules()).GetProgram(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	data := response.Data
	if data.SubscriptionPrice != "1000.00" || data.DirectBonus != "300.00" || data.IndirectBonus != "100.00" {
		t.Fatalf("unexpected amounts %+v", data)
	}
	if data.PlanType != "annual" || data.PlanDurationDays != 365 {
		t.Fatalf("unexpected plan %q/%d", data.PlanType, data.PlanDurationDays)
	}
	if data.MinReferralsToWithdraw != 3 {
		t.Fatalf("expected threshold 3, got %d", data.MinReferralsToWithdraw)
	}
	if len(data.PaymentMethods) != 3 || len(data.NetBankingBanks) != 6 {
		t.Fatalf("unexpected payment options %+v", data)
	}
}

func TestLedgerServiceReconcileFlagsDrift(t *testing.T) {
	svc := services.NewLedgerService(&ledgerRepoStub{
		reconcileFn: func(ctx context.Context, userID string) (decimal.Decimal, decimal.Decimal, error) {
			return decimal.NewFromInt(700), decimal.NewFromInt(600), nil
		},
	})

	response, err := svc.Reconcile(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if response.Data.Consistent {
		t.Fatal("expected drift to be reported")
	}
	if response.Data.Balance != "700.00" || response.Data.LedgerBalance != "600.00" {
		t.Fatalf("unexpected balances %+v", response.Data)
	}
}

func TestLedgerServiceReconcileUnknownUser(t *testing.T) {
	svc := services.NewLedgerService(&ledgerRepoStub{
		reconcileFn: func(ctx context.Context, userID string) (decimal.Decimal, decimal.Decimal, error) {
			return decimal.Zero, decimal.Zero, domain.ErrRecordNotFound
		},
	})

	if _, err := svc.Reconcile(context.Background(), "ghost"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
