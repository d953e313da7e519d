package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/identity"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/payment"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
)

const validSignUp = `{"email":"ada@example.com","password":"secret1","confirmPassword":"secret1","fullName":"Ada","phone":"9876543210"}`

func decodeEnvelope[T any](t *testing.T, body []byte) commons.Response[T] {
	t.Helper()
	var response commons.Response[T]
	if err := json.Unmarshal(body, &response); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return response
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		message string
		err     error
		want    int
	}{
		{"validation failed", errors.New("email is required"), http.StatusBadRequest},
		{"Invalid referral code", fmt.Errorf("resolve: %w", domain.ErrInvalidReferralCode), http.StatusBadRequest},
		{"Cannot use your own referral code", domain.ErrSelfReferral, http.StatusBadRequest},
		{"Cannot use a referral code from your own referral network", domain.ErrReferralCycle, http.StatusBadRequest},
		{"Invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", identity.ErrInvalidToken, http.StatusUnauthorized},
		{"Withdrawal not allowed", domain.ErrWithdrawalNotAllowed, http.StatusForbidden},
		{"User not found", domain.ErrRecordNotFound, http.StatusNotFound},
		{"Email already registered", domain.ErrDuplicateEmail, http.StatusConflict},
		{"Already subscribed", domain.ErrAlreadySubscribed, http.StatusConflict},
		{"Withdrawal already processed", domain.ErrInvalidStateTransition, http.StatusConflict},
		{"Insufficient balance", domain.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{"Payment failed", fmt.Errorf("%w: breaker open", payment.ErrGatewayUnavailable), http.StatusServiceUnavailable},
		{"failed to subscribe", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusFor(tc.message, tc.err); got != tc.want {
			t.Fatalf("%s: expected status %d, got %d", tc.message, tc.want, got)
		}
	}
}

func TestSignUpCreated(t *testing.T) {
	var captured models.SignUpRequest
	ctrl := NewAuthController(authServiceStub{
		signUpFn: func(_ context.Context, req models.SignUpRequest) (commons.Response[models.AuthResponse], error) {
			captured = req
			return commons.SuccessResponse("Account created successfully", models.AuthResponse{AccessToken: "jwt"}), nil
		},
	})

	rr := serve(func(mux *http.ServeMux) { ctrl.RegisterRoutes(mux, nil) }, newRequest(http.MethodPost, "/auth/signup", validSignUp))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	response := decodeEnvelope[models.AuthResponse](t, rr.Body.Bytes())
	if !response.Success || response.Data == nil || response.Data.AccessToken != "jwt" {
		t.Fatalf("unexpected response %+v", response)
	}
	if captured.Email != "ada@example.com" {
		t.Fatalf("expected decoded email, got %q", captured.Email)
	}
}

func TestSignUpRejectsBadInput(t *testing.T) {
	called := false
	ctrl := NewAuthController(authServiceStub{
		signUpFn: func(context.Context, models.SignUpRequest) (commons.Response[models.AuthResponse], error) {
			called = true
			return commons.Response[models.AuthResponse]{}, nil
		},
	})
	register := func(mux *http.ServeMux) { ctrl.RegisterRoutes(mux, nil) }

	if rr := serve(register, newRequest(http.MethodPost, "/auth/signup", "{")); rr.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if rr := serve(register, newRequest(http.MethodPost, "/auth/signup", `{"email":"nope"}`)); rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid body: expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if rr := serve(register, newRequest(http.MethodGet, "/auth/signup", "")); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("wrong method: expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}
	if called {
		t.Fatal("service must not be called for rejected requests")
	}
}

func TestSignUpDuplicateEmailConflict(t *testing.T) {
	ctrl := NewAuthController(authServiceStub{
		signUpFn: func(context.Context, models.SignUpRequest) (commons.Response[models.AuthResponse], error) {
			return commons.ErrorResponse[models.AuthResponse]("Email already registered"), domain.ErrDuplicateEmail
		},
	})

	rr := serve(func(mux *http.ServeMux) { ctrl.RegisterRoutes(mux, nil) }, newRequest(http.MethodPost, "/auth/signup", validSignUp))

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
}

func TestSignInInvalidCredentials(t *testing.T) {
	ctrl := NewAuthController(authServiceStub{
		signInFn: func(context.Context, models.SignInRequest) (commons.Response[models.AuthResponse], error) {
			return commons.ErrorResponse[models.AuthResponse]("Invalid credentials"), domain.ErrInvalidCredentials
		},
	})

	body := `{"email":"ada@example.com","password":"wrong"}`
	rr := serve(func(mux *http.ServeMux) { ctrl.RegisterRoutes(mux, nil) }, newRequest(http.MethodPost, "/auth/signin", body))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestAuthRoutesUseMiddleware(t *testing.T) {
	ctrl := NewAuthController(authServiceStub{})
	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}

	rr := serve(func(mux *http.ServeMux) { ctrl.RegisterRoutes(mux, blocked) }, newRequest(http.MethodPost, "/auth/signin", "{}"))

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, rr.Code)
	}
}

func TestProfileRequiresClaims(t *testing.T) {
	ctrl := NewProfileController(authServiceStub{}, dashboardServiceStub{}, kycServiceStub{})

	rr := serve(func(mux *http.ServeMux) { ctrl.RegisterRoutes(mux, nil) }, newRequest(http.MethodGet, "/me", ""))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestDashboardEnsuresProfileFirst(t *testing.T) {
	var calls []string
	ctrl := NewProfileController(
		authServiceStub{
			ensureProfileFn: func(_ context.Context, claims identity.Claims) (commons.Response[models.ProfileResponse], error) {
				calls = append(calls, "ensure:"+claims.UserID())
				return commons.SuccessResponse("Profile created successfully", models.ProfileResponse{ID: claims.UserID()}), nil
			},
		},
		dashboardServiceStub{
			getDashboardFn: func(_ context.Context, userID string) (commons.Response[models.DashboardResponse], error) {
				calls = append(calls, "dashboard:"+userID)
				return commons.SuccessResponse("Dashboard fetched successfully", models.DashboardResponse{}), nil
			},
		},
		kycServiceStub{},
	)

	req := withUser(newRequest(http.MethodGet, "/me/dashboard", ""), "u-1")
	rr := serve(func(mux *http.ServeMux) { ctrl.RegisterRoutes(mux, nil) }, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if len(calls) != 2 || calls[0] != "ensure:u-1" || calls[1] != "dashboard:u-1" {
		t.Fatalf("unexpected call order %v", calls)
	}
}

func TestDashboardStopsWhenProfileFails(t *testing.T) {
	ctrl := NewProfileController(
		authServiceStub{
			ensureProfileFn: func(context.Context, identity.Claims) (commons.Response[models.ProfileResponse], error) {
				return commons.ErrorResponse[models.ProfileResponse]("Email already registered"), domain.ErrDuplicateEmail
			},
		},
		dashboardServiceStub{},
		kycServiceStub{},
	)

	req := withUser(newRequest(http.MethodGet, "/me/dashboard", ""), "u-1")
	rr := serve(func(mux *http.ServeMux) { ctrl.RegisterRoutes(mux, nil) }, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
	response := decodeEnvelope[models.DashboardResponse](t, rr.Body.Bytes())
	if response.Success || response.Message != "Email already registered" {
		t.Fatalf("unexpected response %+v", response)
	}
}

func TestSubmitKYCPassesUser(t *testing.T) {
	var gotUser string
	ctrl := NewProfileController(authServiceStub{}, dashboardServiceStub{}, kycServiceStub{
		submitFn: func(_ context.Context, userID string, _ models.SubmitKYCRequest) (commons.Response[models.KYCResponse], error) {
			gotUser = userID
			return commons.SuccessResponse("KYC submitted successfully", models.KYCResponse{UserID: userID, KYCStatus: "submitted"}), nil
		},
	})

	body := `{"aadhaarNumber":"123412341234","panNumber":"ABCDE1234F","aadhaarImagePath":"kyc/a.png","panImagePath":"kyc/p.png"}`
	req := withUser(newRequest(http.MethodPost, "/me/kyc", body), "u-7")
	rr := serve(func(mux *http.ServeMux) { ctrl.RegisterRoutes(mux, nil) }, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if gotUser != "u-7" {
		t.Fatalf("expected user u-7, got %q", gotUser)
	}
}
