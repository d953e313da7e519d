package models

type ProgramResponse struct {
	SubscriptionPrice      string   `json:"subscriptionPrice"`
	Currency               string   `json:"currency"`
	PlanType               string   `json:"planType"`
	PlanDurationDays       int      `json:"planDurationDays"`
	DirectBonus            string   `json:"directBonus"`
	IndirectBonus          string   `json:"indirectBonus"`
	MinReferralsToWithdraw int      `json:"minReferralsToWithdraw"`
	MinWithdrawalAmount    string   `json:"minWithdrawalAmount"`
	RequireKYCForWithdraw  bool     `json:"requireKycForWithdraw"`
	PaymentMethods         []string `json:"paymentMethods"`
	NetBankingBanks        []string `json:"netBankingBanks"`
}
