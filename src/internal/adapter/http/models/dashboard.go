package models

type ReferralResponse struct {
	ID             string `json:"id"`
	ReferredUserID string `json:"referredUserId"`
	Level          string `json:"level"`
	BonusAmount    string `json:"bonusAmount"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
}

type DashboardStats struct {
	Balance           string `json:"balance"`
	ReferralBonus     string `json:"referralBonus"`
	ReferralCount     int    `json:"referralCount"`
	DirectReferrals   int    `json:"directReferrals"`
	IndirectReferrals int    `json:"indirectReferrals"`
	KYCStatus         string `json:"kycStatus"`
	CanWithdraw       bool   `json:"canWithdraw"`
}

type DashboardResponse struct {
	Profile      ProfileResponse       `json:"profile"`
	Stats        DashboardStats        `json:"stats"`
	ReferralLink string                `json:"referralLink"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
	Referrals    []ReferralResponse    `json:"referrals"`
	WithdrawHint *string               `json:"withdrawHint,omitempty"`
}
