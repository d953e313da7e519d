package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/usecase/services"
)

func TestKYCServiceSubmitNormalisesDocuments(t *testing.T) {
	var got domain.KYCDocuments
	svc := services.NewKYCService(&userRepoStub{
		submitKYCFn: func(ctx context.Context, userID string, docs domain.KYCDocuments) (domain.User, error) {
			got = docs
			return domain.User{ID: userID, KYCStatus: domain.KYCStatusSubmitted}, nil
		},
	})

	response, err := svc.SubmitKYC(context.Background(), "u-1", models.SubmitKYCRequest{
		AadhaarNumber:    "1234 5678 9012",
		PANNumber:        "abcde1234f",
		AadhaarImagePath: "kyc/u-1/aadhaar.jpg",
		PANImagePath:     "kyc/u-1/pan.jpg",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.AadhaarNumber != "123456789012" || got.PANNumber != "ABCDE1234F" {
		t.Fatalf("expected normalised documents, got %+v", got)
	}
	if response.Data.KYCStatus != "submitted" {
		t.Fatalf("expected submitted status, got %q", response.Data.KYCStatus)
	}
}

func TestKYCServiceSubmitRejectedForVerifiedUser(t *testing.T) {
	svc := services.NewKYCService(&userRepoStub{
		submitKYCFn: func(ctx context.Context, userID string, docs domain.KYCDocuments) (domain.User, error) {
			return domain.User{}, domain.ErrInvalidStateTransition
		},
	})

	_, err := svc.SubmitKYC(context.Background(), "u-1", models.SubmitKYCRequest{
		AadhaarNumber:    "123456789012",
		PANNumber:        "ABCDE1234F",
		AadhaarImagePath: "a.jpg",
		PANImagePath:     "p.jpg",
	})
	if !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
	}
}

func TestKYCServiceSubmitValidationError(t *testing.T) {
	svc := services.NewKYCService(&userRepoStub{})

	if _, err := svc.SubmitKYC(context.Background(), "u-1", models.SubmitKYCRequest{AadhaarNumber: "123"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestKYCServiceReviewTransitionsFromSubmitted(t *testing.T) {
	var from, to domain.KYCStatus
	svc := services.NewKYCService(&userRepoStub{
		transitionKYCFn: func(ctx context.Context, userID string, fromStatus domain.KYCStatus, toStatus domain.KYCStatus) (domain.User, error) {
			from, to = fromStatus, toStatus
			return domain.User{ID: userID, KYCStatus: toStatus}, nil
		},
	})

	if _, err := svc.ReviewKYC(context.Background(), models.ReviewKYCRequest{UserID: "u-1", Approve: true}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if from != domain.KYCStatusSubmitted || to != domain.KYCStatusVerified {
		t.Fatalf("expected submitted -> verified, got %s -> %s", from, to)
	}

	if _, err := svc.ReviewKYC(context.Background(), models.ReviewKYCRequest{UserID: "u-1"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if to != domain.KYCStatusRejected {
		t.Fatalf("expected rejected, got %s", to)
	}
}
