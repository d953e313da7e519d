package services

import (
	"context"
	"errors"
	"strings"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
	"github.com/api-sage/cfc-rewards/src/internal/metrics"
)

const (
	defaultPendingLimit = 50
	maxPendingLimit     = 200
)

// WithdrawalService is the admin side of the withdrawal lifecycle.
type WithdrawalService struct {
	withdrawalRepo repo_interfaces.WithdrawalRepository
}

func NewWithdrawalService(withdrawalRepo repo_interfaces.WithdrawalRepository) *WithdrawalService {
	return &WithdrawalService{withdrawalRepo: withdrawalRepo}
}

func (s *WithdrawalService) ListPendingWithdrawals(ctx context.Context, limit int) (commons.Response[[]models.WithdrawalResponse], error) {
	if limit <= 0 {
		limit = defaultPendingLimit
	}
	if limit > maxPendingLimit {
		limit = maxPendingLimit
	}

	withdrawals, err := s.withdrawalRepo.ListPending(ctx, limit)
	if err != nil {
		logger.Error("withdrawal service list pending failed", err, nil)
		return commons.ErrorResponse[[]models.WithdrawalResponse]("failed to list withdrawals", "Unable to fetch withdrawals right now"), err
	}

	response := make([]models.WithdrawalResponse, 0, len(withdrawals))
	for _, withdrawal := range withdrawals {
		response = append(response, mapWithdrawalToResponse(withdrawal))
	}

	logger.Info("withdrawal service list pending success", logger.Fields{
		"count": len(response),
	})

	return commons.SuccessResponse("Pending withdrawals fetched successfully", response), nil
}

func (s *WithdrawalService) ProcessWithdrawal(ctx context.Context, req models.ProcessWithdrawalRequest) (commons.Response[models.WithdrawalResponse], error) {
	logger.Info("withdrawal service process request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.WithdrawalResponse]("validation failed", err.Error()), err
	}

	var notes *string
	if trimmed := strings.TrimSpace(req.AdminNotes); trimmed != "" {
		notes = &trimmed
	}
	action := domain.WithdrawalAction(strings.ToLower(strings.TrimSpace(req.Action)))

	processed, err := s.withdrawalRepo.Process(ctx, strings.TrimSpace(req.WithdrawalID), action, notes)
	if err != nil {
		logger.Error("withdrawal service process failed", err, logger.Fields{
			"withdrawalId": req.WithdrawalID,
		})
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			return commons.ErrorResponse[models.WithdrawalResponse]("Withdrawal not found"), err
		case errors.Is(err, domain.ErrInvalidStateTransition):
			return commons.ErrorResponse[models.WithdrawalResponse]("Withdrawal already processed"), err
		default:
			return commons.ErrorResponse[models.WithdrawalResponse]("failed to process withdrawal", "Unable to process withdrawal right now"), err
		}
	}

	metrics.RecordWithdrawal(string(processed.Status))
	logger.Info("withdrawal service process success", logger.Fields{
		"withdrawalId": processed.ID,
		"status":       processed.Status,
	})

	return commons.SuccessResponse("Withdrawal processed successfully", mapWithdrawalToResponse(processed)), nil
}
