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
	"github.com/api-sage/cfc-rewards/src/internal/metrics"
	"golang.org/x/sync/errgroup"
)

type WalletService struct {
	userRepo        repo_interfaces.UserRepository
	transactionRepo repo_interfaces.TransactionRepository
	withdrawalRepo  repo_interfaces.WithdrawalRepository
	rules           domain.ProgramRules
}

func NewWalletService(
	userRepo repo_interfaces.UserRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	withdrawalRepo repo_interfaces.WithdrawalRepository,
	rules domain.ProgramRules,
) *WalletService {
	return &WalletService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		withdrawalRepo:  withdrawalRepo,
		rules:           rules,
	}
}

func (s *WalletService) GetWallet(ctx context.Context, userID string) (commons.Response[models.WalletResponse], error) {
	logger.Info("wallet service get wallet request", logger.Fields{
		"userId": userID,
	})

	if strings.TrimSpace(userID) == "" {
		return commons.ErrorResponse[models.WalletResponse]("validation failed", "userId is required"), fmt.Errorf("userId is required")
	}

	var (
		user         domain.User
		transactions []domain.Transaction
		withdrawals  []domain.Withdrawal
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		user, err = s.userRepo.GetByID(groupCtx, userID)
		return err
	})
	group.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.ListByUserID(groupCtx, userID)
		return err
	})
	group.Go(func() error {
		var err error
		withdrawals, err = s.withdrawalRepo.ListByUserID(groupCtx, userID)
		return err
	})

	if err := group.Wait(); err != nil {
		logger.Error("wallet service get wallet failed", err, logger.Fields{
			"userId": userID,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.WalletResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.WalletResponse]("failed to get wallet", "Unable to fetch wallet right now"), err
	}

	response := models.WalletResponse{
		Balance:      formatAmount(user.Balance),
		CanWithdraw:  user.CanWithdraw,
		Transactions: make([]models.TransactionResponse, 0, len(transactions)),
		Withdrawals:  make([]models.WithdrawalResponse, 0, len(withdrawals)),
	}
	for _, transaction := range transactions {
		response.Transactions = append(response.Transactions, mapTransactionToResponse(transaction))
	}
	for _, withdrawal := range withdrawals {
		response.Withdrawals = append(response.Withdrawals, mapWithdrawalToResponse(withdrawal))
	}

	logger.Info("wallet service get wallet success", logger.Fields{
		"userId":       userID,
		"transactions": len(response.Transactions),
		"withdrawals":  len(response.Withdrawals),
	})

	return commons.SuccessResponse("Wallet fetched successfully", response), nil
}

func (s *WalletService) RequestWithdrawal(ctx context.Context, userID string, req models.WithdrawalRequest) (commons.Response[models.WithdrawalResponse], error) {
	logger.Info("wallet service request withdrawal", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if strings.TrimSpace(userID) == "" {
		return commons.ErrorResponse[models.WithdrawalResponse]("validation failed", "userId is required"), fmt.Errorf("userId is required")
	}
	if err := req.Validate(); err != nil {
		logger.Error("wallet service request withdrawal validation failed", err, nil)
		return commons.ErrorResponse[models.WithdrawalResponse]("validation failed", err.Error()), err
	}
	if req.Amount.LessThan(s.rules.MinWithdrawalAmount) {
		err := fmt.Errorf("amount must be at least %s", formatAmount(s.rules.MinWithdrawalAmount))
		return commons.ErrorResponse[models.WithdrawalResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error("wallet service request withdrawal user lookup failed", err, logger.Fields{
			"userId": userID,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.WithdrawalResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.WithdrawalResponse]("failed to request withdrawal", "Unable to process withdrawal right now"), err
	}

	if !user.CanWithdraw {
		return commons.ErrorResponse[models.WithdrawalResponse](
			"Withdrawal not allowed",
			withdrawHint(s.rules.MinReferralsToWithdraw),
		), domain.ErrWithdrawalNotAllowed
	}
	if s.rules.RequireKYCForWithdraw && user.KYCStatus != domain.KYCStatusVerified {
		return commons.ErrorResponse[models.WithdrawalResponse](
			"Withdrawal not allowed",
			"KYC verification is required before withdrawing",
		), domain.ErrWithdrawalNotAllowed
	}
	if req.Amount.GreaterThan(user.Balance) {
		return commons.ErrorResponse[models.WithdrawalResponse]("Insufficient balance"), domain.ErrInsufficientBalance
	}

	created, err := s.withdrawalRepo.CreateWithHold(ctx, domain.Withdrawal{
		UserID:            user.ID,
		Amount:            req.Amount,
		BankName:          strings.TrimSpace(req.BankName),
		BankAccountNumber: strings.TrimSpace(req.BankAccountNumber),
		IFSCCode:          strings.ToUpper(strings.TrimSpace(req.IFSCCode)),
		AccountHolderName: strings.TrimSpace(req.AccountHolderName),
	})
	if err != nil {
		logger.Error("wallet service create withdrawal failed", err, logger.Fields{
			"userId": userID,
		})
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return commons.ErrorResponse[models.WithdrawalResponse]("Insufficient balance"), err
		}
		return commons.ErrorResponse[models.WithdrawalResponse]("failed to request withdrawal", "Unable to process withdrawal right now"), err
	}

	metrics.RecordWithdrawal(string(created.Status))
	logger.Info("wallet service request withdrawal success", logger.Fields{
		"userId":       userID,
		"withdrawalId": created.ID,
	})

	return commons.SuccessResponse("Withdrawal request submitted", mapWithdrawalToResponse(created)), nil
}

func withdrawHint(minReferrals int) string {
	return fmt.Sprintf("You need at least %d referrals to withdraw earnings", minReferrals)
}
