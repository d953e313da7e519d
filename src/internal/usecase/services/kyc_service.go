package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
)

type KYCService struct {
	userRepo repo_interfaces.UserRepository
}

func NewKYCService(userRepo repo_interfaces.UserRepository) *KYCService {
	return &KYCService{userRepo: userRepo}
}

func (s *KYCService) SubmitKYC(ctx context.Context, userID string, req models.SubmitKYCRequest) (commons.Response[models.KYCResponse], error) {
	logger.Info("kyc service submit request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if strings.TrimSpace(userID) == "" {
		return commons.ErrorResponse[models.KYCResponse]("validation failed", "userId is required"), fmt.Errorf("userId is required")
	}
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.KYCResponse]("validation failed", err.Error()), err
	}

	updated, err := s.userRepo.SubmitKYC(ctx, userID, domain.KYCDocuments{
		AadhaarNumber:    strings.ReplaceAll(strings.TrimSpace(req.AadhaarNumber), " ", ""),
		PANNumber:        strings.ToUpper(strings.TrimSpace(req.PANNumber)),
		AadhaarImagePath: strings.TrimSpace(req.AadhaarImagePath),
		PANImagePath:     strings.TrimSpace(req.PANImagePath),
	})
	if err != nil {
		logger.Error("kyc service submit failed", err, logger.Fields{
			"userId": userID,
		})
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			return commons.ErrorResponse[models.KYCResponse]("User not found"), err
		case errors.Is(err, domain.ErrInvalidStateTransition):
			return commons.ErrorResponse[models.KYCResponse]("KYC already submitted or verified"), err
		default:
			return commons.ErrorResponse[models.KYCResponse]("failed to submit kyc", "Unable to submit KYC right now"), err
		}
	}

	logger.Info("kyc service submit success", logger.Fields{
		"userId":    updated.ID,
		"kycStatus": updated.KYCStatus,
	})

	return commons.SuccessResponse("KYC submitted successfully", models.KYCResponse{
		UserID:    updated.ID,
		KYCStatus: string(updated.KYCStatus),
	}), nil
}

// ReviewKYC settles a submitted KYC as verified or rejected.
func (s *KYCService) ReviewKYC(ctx context.Context, req models.ReviewKYCRequest) (commons.Response[models.KYCResponse], error) {
	logger.Info("kyc service review request", logger.Fields{
		"userId":  req.UserID,
		"approve": req.Approve,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.KYCResponse]("validation failed", err.Error()), err
	}

	next := domain.KYCStatusRejected
	if req.Approve {
		next = domain.KYCStatusVerified
	}

	updated, err := s.userRepo.TransitionKYC(ctx, strings.TrimSpace(req.UserID), domain.KYCStatusSubmitted, next)
	if err != nil {
		logger.Error("kyc service review failed", err, logger.Fields{
			"userId": req.UserID,
		})
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			return commons.ErrorResponse[models.KYCResponse]("User not found"), err
		case errors.Is(err, domain.ErrInvalidStateTransition):
			return commons.ErrorResponse[models.KYCResponse]("KYC is not awaiting review"), err
		default:
			return commons.ErrorResponse[models.KYCResponse]("failed to review kyc", "Unable to review KYC right now"), err
		}
	}

	return commons.SuccessResponse("KYC reviewed successfully", models.KYCResponse{
		UserID:    updated.ID,
		KYCStatus: string(updated.KYCStatus),
	}), nil
}
