package services

import (
	"context"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
)

type ProgramService struct {
	rules domain.ProgramRules
}

func NewProgramService(rules domain.ProgramRules) *ProgramService {
	return &ProgramService{rules: rules}
}

func (s *ProgramService) GetProgram(ctx context.Context) (commons.Response[models.ProgramResponse], error) {
	banks := make([]string, len(domain.NetBankingBanks))
	copy(banks, domain.NetBankingBanks)

	response := models.ProgramResponse{
		SubscriptionPrice:      formatAmount(s.rules.SubscriptionPrice),
		Currency:               "INR",
		PlanType:               s.rules.PlanType,
		PlanDurationDays:       int(s.rules.PlanDuration.Hours() / 24),
		DirectBonus:            formatAmount(s.rules.DirectBonus),
		IndirectBonus:          formatAmount(s.rules.IndirectBonus),
		MinReferralsToWithdraw: s.rules.MinReferralsToWithdraw,
		MinWithdrawalAmount:    formatAmount(s.rules.MinWithdrawalAmount),
		RequireKYCForWithdraw:  s.rules.RequireKYCForWithdraw,
		PaymentMethods: []string{
			string(domain.PaymentMethodCard),
			string(domain.PaymentMethodUPI),
			string(domain.PaymentMethodNetBanking),
		},
		NetBankingBanks: banks,
	}

	return commons.SuccessResponse("Program fetched successfully", response), nil
}
