package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/middleware"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/identity"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
)

type authServiceStub struct {
	signUpFn        func(ctx context.Context, req models.SignUpRequest) (commons.Response[models.AuthResponse], error)
	signInFn        func(ctx context.Context, req models.SignInRequest) (commons.Response[models.AuthResponse], error)
	ensureProfileFn func(ctx context.Context, claims identity.Claims) (commons.Response[models.ProfileResponse], error)
}

func (s authServiceStub) SignUp(ctx context.Context, req models.SignUpRequest) (commons.Response[models.AuthResponse], error) {
	return s.signUpFn(ctx, req)
}

func (s authServiceStub) SignIn(ctx context.Context, req models.SignInRequest) (commons.Response[models.AuthResponse], error) {
	return s.signInFn(ctx, req)
}

func (s authServiceStub) EnsureProfile(ctx context.Context, claims identity.Claims) (commons.Response[models.ProfileResponse], error) {
	return s.ensureProfileFn(ctx, claims)
}

type dashboardServiceStub struct {
	getDashboardFn  func(ctx context.Context, userID string) (commons.Response[models.DashboardResponse], error)
	listReferralsFn func(ctx context.Context, userID string) (commons.Response[[]models.ReferralResponse], error)
}

func (s dashboardServiceStub) GetDashboard(ctx context.Context, userID string) (commons.Response[models.DashboardResponse], error) {
	return s.getDashboardFn(ctx, userID)
}

func (s dashboardServiceStub) ListReferrals(ctx context.Context, userID string) (commons.Response[[]models.ReferralResponse], error) {
	return s.listReferralsFn(ctx, userID)
}

type kycServiceStub struct {
	submitFn func(ctx context.Context, userID string, req models.SubmitKYCRequest) (commons.Response[models.KYCResponse], error)
	reviewFn func(ctx context.Context, req models.ReviewKYCRequest) (commons.Response[models.KYCResponse], error)
}

func (s kycServiceStub) SubmitKYC(ctx context.Context, userID string, req models.SubmitKYCRequest) (commons.Response[models.KYCResponse], error) {
	return s.submitFn(ctx, userID, req)
}

func (s kycServiceStub) ReviewKYC(ctx context.Context, req models.ReviewKYCRequest) (commons.Response[models.KYCResponse], error) {
	return s.reviewFn(ctx, req)
}

type subscriptionServiceStub struct {
	subscribeFn       func(ctx context.Context, userID string, req models.SubscribeRequest) (commons.Response[models.SubscriptionResponse], error)
	getSubscriptionFn func(ctx context.Context, userID string) (commons.Response[models.SubscriptionResponse], error)
}

func (s subscriptionServiceStub) Subscribe(ctx context.Context, userID string, req models.SubscribeRequest) (commons.Response[models.SubscriptionResponse], error) {
	return s.subscribeFn(ctx, userID, req)
}

func (s subscriptionServiceStub) GetSubscription(ctx context.Context, userID string) (commons.Response[models.SubscriptionResponse], error) {
	return s.getSubscriptionFn(ctx, userID)
}

func (s subscriptionServiceStub) ExpireSubscriptions(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type walletServiceStub struct {
	getWalletFn         func(ctx context.Context, userID string) (commons.Response[models.WalletResponse], error)
	requestWithdrawalFn func(ctx context.Context, userID string, req models.WithdrawalRequest) (commons.Response[models.WithdrawalResponse], error)
}

func (s walletServiceStub) GetWallet(ctx context.Context, userID string) (commons.Response[models.WalletResponse], error) {
	return s.getWalletFn(ctx, userID)
}

func (s walletServiceStub) RequestWithdrawal(ctx context.Context, userID string, req models.WithdrawalRequest) (commons.Response[models.WithdrawalResponse], error) {
	return s.requestWithdrawalFn(ctx, userID, req)
}

type withdrawalServiceStub struct {
	listPendingFn func(ctx context.Context, limit int) (commons.Response[[]models.WithdrawalResponse], error)
	processFn     func(ctx context.Context, req models.ProcessWithdrawalRequest) (commons.Response[models.WithdrawalResponse], error)
}

func (s withdrawalServiceStub) ListPendingWithdrawals(ctx context.Context, limit int) (commons.Response[[]models.WithdrawalResponse], error) {
	return s.listPendingFn(ctx, limit)
}

func (s withdrawalServiceStub) ProcessWithdrawal(ctx context.Context, req models.ProcessWithdrawalRequest) (commons.Response[models.WithdrawalResponse], error) {
	return s.processFn(ctx, req)
}

type ledgerServiceStub struct {
	reconcileFn func(ctx context.Context, userID string) (commons.Response[models.ReconcileResponse], error)
}

func (s ledgerServiceStub) Reconcile(ctx context.Context, userID string) (commons.Response[models.ReconcileResponse], error) {
	return s.reconcileFn(ctx, userID)
}

type programServiceStub struct{}

func (programServiceStub) GetProgram(context.Context) (commons.Response[models.ProgramResponse], error) {
	return commons.SuccessResponse("Program fetched successfully", models.ProgramResponse{}), nil
}

type pingerStub struct {
	err error
}

func (p pingerStub) PingContext(context.Context) error {
	return p.err
}

func newRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUser(req *http.Request, userID string) *http.Request {
	claims := identity.Claims{Email: "ada@example.com"}
	claims.Subject = userID
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func serve(register func(mux *http.ServeMux), req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	register(mux)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}
