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

type LedgerService struct {
	ledgerRepo repo_interfaces.LedgerRepository
}

func NewLedgerService(ledgerRepo repo_interfaces.LedgerRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

// Reconcile compares the stored wallet balance with the balance replayed from the transaction log.
func (s *LedgerService) Reconcile(ctx context.Context, userID string) (commons.Response[models.ReconcileResponse], error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return commons.ErrorResponse[models.ReconcileResponse]("validation failed", "userId is required"), fmt.Errorf("userId is required")
	}

	balance, ledgerTotal, err := s.ledgerRepo.Reconcile(ctx, userID)
	if err != nil {
		logger.Error("ledger service reconcile failed", err, logger.Fields{
			"userId": userID,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ReconcileResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.ReconcileResponse]("failed to reconcile ledger", "Unable to reconcile ledger right now"), err
	}

	response := models.ReconcileResponse{
		UserID:        userID,
		Balance:       formatAmount(balance),
		LedgerBalance: formatAmount(ledgerTotal),
		Consistent:    balance.Equal(ledgerTotal),
	}
	if !response.Consistent {
		logger.Warn("ledger service balance drift detected", logger.Fields{
			"userId":        userID,
			"balance":       response.Balance,
			"ledgerBalance": response.LedgerBalance,
		})
	}

	return commons.SuccessResponse("Ledger reconciled", response), nil
}
