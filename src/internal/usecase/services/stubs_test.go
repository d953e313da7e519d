package services_test

import (
	"context"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/identity"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/payment"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/shopspring/decimal"
)

type userRepoStub struct {
	createFn            func(ctx context.Context, user domain.User) (domain.User, error)
	getByIDFn           func(ctx context.Context, id string) (domain.User, error)
	getByEmailFn        func(ctx context.Context, email string) (domain.User, error)
	getByReferralCodeFn func(ctx context.Context, code string) (domain.User, error)
	attachReferrerFn    func(ctx context.Context, userID string, referrerID string) error
	submitKYCFn         func(ctx context.Context, userID string, docs domain.KYCDocuments) (domain.User, error)
	transitionKYCFn     func(ctx context.Context, userID string, from domain.KYCStatus, to domain.KYCStatus) (domain.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return s.createFn(ctx, user)
}

func (s *userRepoStub) GetByID(ctx context.Context, id string) (domain.User, error) {
	if s.getByIDFn == nil {
		return domain.User{}, domain.ErrRecordNotFound
	}
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if s.getByEmailFn == nil {
		return domain.User{}, domain.ErrRecordNotFound
	}
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) GetByReferralCode(ctx context.Context, code string) (domain.User, error) {
	if s.getByReferralCodeFn == nil {
		return domain.User{}, domain.ErrRecordNotFound
	}
	return s.getByReferralCodeFn(ctx, code)
}

func (s *userRepoStub) AttachReferrer(ctx context.Context, userID string, referrerID string) error {
	if s.attachReferrerFn == nil {
		return nil
	}
	return s.attachReferrerFn(ctx, userID, referrerID)
}

func (s *userRepoStub) SubmitKYC(ctx context.Context, userID string, docs domain.KYCDocuments) (domain.User, error) {
	return s.submitKYCFn(ctx, userID, docs)
}

func (s *userRepoStub) TransitionKYC(ctx context.Context, userID string, from domain.KYCStatus, to domain.KYCStatus) (domain.User, error) {
	return s.transitionKYCFn(ctx, userID, from, to)
}

type ledgerRepoStub struct {
	addReferralBonusFn func(ctx context.Context, credit domain.ReferralCredit, minDirectReferrals int) (bool, error)
	reconcileFn        func(ctx context.Context, userID string) (decimal.Decimal, decimal.Decimal, error)
}

func (s *ledgerRepoStub) AddReferralBonus(ctx context.Context, credit domain.ReferralCredit, minDirectReferrals int) (bool, error) {
	return s.addReferralBonusFn(ctx, credit, minDirectReferrals)
}

func (s *ledgerRepoStub) Reconcile(ctx context.Context, userID string) (decimal.Decimal, decimal.Decimal, error) {
	return s.reconcileFn(ctx, userID)
}

type subscriptionRepoStub struct {
	activateFn          func(ctx context.Context, subscription domain.Subscription, payment domain.Transaction) (domain.Subscription, error)
	getLatestByUserIDFn func(ctx context.Context, userID string) (domain.Subscription, error)
	expireDueFn         func(ctx context.Context, now time.Time) (int64, error)
}

func (s *subscriptionRepoStub) Activate(ctx context.Context, subscription domain.Subscription, payment domain.Transaction) (domain.Subscription, error) {
	return s.activateFn(ctx, subscription, payment)
}

func (s *subscriptionRepoStub) GetLatestByUserID(ctx context.Context, userID string) (domain.Subscription, error) {
	if s.getLatestByUserIDFn == nil {
		return domain.Subscription{}, domain.ErrRecordNotFound
	}
	return s.getLatestByUserIDFn(ctx, userID)
}

func (s *subscriptionRepoStub) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	return s.expireDueFn(ctx, now)
}

type transactionRepoStub struct {
	listByUserIDFn func(ctx context.Context, userID string) ([]domain.Transaction, error)
}

func (s *transactionRepoStub) ListByUserID(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.listByUserIDFn(ctx, userID)
}

type withdrawalRepoStub struct {
	createWithHoldFn func(ctx context.Context, withdrawal domain.Withdrawal) (domain.Withdrawal, error)
	listByUserIDFn   func(ctx context.Context, userID string) ([]domain.Withdrawal, error)
	listPendingFn    func(ctx context.Context, limit int) ([]domain.Withdrawal, error)
	processFn        func(ctx context.Context, withdrawalID string, action domain.WithdrawalAction, adminNotes *string) (domain.Withdrawal, error)
}

func (s *withdrawalRepoStub) CreateWithHold(ctx context.Context, withdrawal domain.Withdrawal) (domain.Withdrawal, error) {
	return s.createWithHoldFn(ctx, withdrawal)
}

func (s *withdrawalRepoStub) ListByUserID(ctx context.Context, userID string) ([]domain.Withdrawal, error) {
	return s.listByUserIDFn(ctx, userID)
}

func (s *withdrawalRepoStub) ListPending(ctx context.Context, limit int) ([]domain.Withdrawal, error) {
	return s.listPendingFn(ctx, limit)
}

func (s *withdrawalRepoStub) Process(ctx context.Context, withdrawalID string, action domain.WithdrawalAction, adminNotes *string) (domain.Withdrawal, error) {
	return s.processFn(ctx, withdrawalID, action, adminNotes)
}

type referralRepoStub struct {
	listByReferrerFn  func(ctx context.Context, referrerID string) ([]domain.Referral, error)
	countByReferrerFn func(ctx context.Context, referrerID string, level domain.ReferralLevel) (int, error)
}

func (s *referralRepoStub) ListByReferrer(ctx context.Context, referrerID string) ([]domain.Referral, error) {
	return s.listByReferrerFn(ctx, referrerID)
}

func (s *referralRepoStub) CountByReferrer(ctx context.Context, referrerID string, level domain.ReferralLevel) (int, error) {
	return s.countByReferrerFn(ctx, referrerID, level)
}

type gatewayStub struct {
	chargeFn func(ctx context.Context, req payment.ChargeRequest) (payment.Receipt, error)
	refundFn func(ctx context.Context, receipt payment.Receipt) error
}

func (s *gatewayStub) Charge(ctx context.Context, req payment.ChargeRequest) (payment.Receipt, error) {
	return s.chargeFn(ctx, req)
}

func (s *gatewayStub) Refund(ctx context.Context, receipt payment.Receipt) error {
	if s.refundFn == nil {
		return nil
	}
	return s.refundFn(ctx, receipt)
}

type tokenIssuerStub struct{}

func (tokenIssuerStub) Issue(userID string, email string, metadata identity.UserMetadata) (string, time.Time, error) {
	return "token-" + userID, time.Now().Add(time.Hour), nil
}

func stringPtr(value string) *string {
	return &value
}
