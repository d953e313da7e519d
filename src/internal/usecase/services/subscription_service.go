package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/cache"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/payment"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
	"github.com/api-sage/cfc-rewards/src/internal/metrics"
)

const referralCreditPendingMessage = "Subscription active. Referral credit pending"

type PaymentGateway interface {
	Charge(ctx context.Context, req payment.ChargeRequest) (payment.Receipt, error)
	Refund(ctx context.Context, receipt payment.Receipt) error
}

type SubscriptionService struct {
	userRepo         repo_interfaces.UserRepository
	subscriptionRepo repo_interfaces.SubscriptionRepository
	ledgerRepo       repo_interfaces.LedgerRepository
	gateway          PaymentGateway
	resolver         referrerResolver
	rules            domain.ProgramRules
}

func NewSubscriptionService(
	userRepo repo_interfaces.UserRepository,
	subscriptionRepo repo_interfaces.SubscriptionRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
	gateway PaymentGateway,
	codes cache.ReferralCodeCache,
	rules domain.ProgramRules,
) *SubscriptionService {
	return &SubscriptionService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		ledgerRepo:       ledgerRepo,
		gateway:          gateway,
		resolver:         newReferrerResolver(userRepo, codes),
		rules:            rules,
	}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, userID string, req models.SubscribeRequest) (commons.Response[models.SubscriptionResponse], error) {
	logger.Info("subscription service subscribe request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if strings.TrimSpace(userID) == "" {
		return commons.ErrorResponse[models.SubscriptionResponse]("validation failed", "userId is required"), fmt.Errorf("userId is required")
	}
	now := time.Now().UTC()
	if err := req.ValidateAt(now); err != nil {
		logger.Error("subscription service subscribe validation failed", err, nil)
		return commons.ErrorResponse[models.SubscriptionResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error("subscription service subscribe user lookup failed", err, logger.Fields{
			"userId": userID,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.SubscriptionResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.SubscriptionResponse]("failed to subscribe", "Unable to process subscription right now"), err
	}

	latest, err := s.subscriptionRepo.GetLatestByUserID(ctx, userID)
	switch {
	case err == nil && latest.IsActiveAt(now):
		return commons.ErrorResponse[models.SubscriptionResponse]("Already subscribed"), domain.ErrAlreadySubscribed
	case err != nil && !errors.Is(err, domain.ErrRecordNotFound):
		logger.Error("subscription service subscribe latest lookup failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.SubscriptionResponse]("failed to subscribe", "Unable to process subscription right now"), err
	}

	var newReferrer *domain.User
	if code := strings.TrimSpace(req.ReferralCode); code != "" && user.ReferredBy == nil {
		referrer, err := s.resolver.resolve(ctx, code)
		if err != nil {
			logger.Error("subscription service subscribe referral code rejected", err, logger.Fields{
				"userId":       userID,
				"referralCode": code,
			})
			if errors.Is(err, domain.ErrInvalidReferralCode) {
				return commons.ErrorResponse[models.SubscriptionResponse]("Invalid referral code"), err
			}
			return commons.ErrorResponse[models.SubscriptionResponse]("failed to subscribe", "Unable to process subscription right now"), err
		}
		if referrer.ID == user.ID {
			return commons.ErrorResponse[models.SubscriptionResponse]("Cannot use your own referral code"), domain.ErrSelfReferral
		}
		below, err := s.inDownline(ctx, user.ID, referrer)
		if err != nil {
			logger.Error("subscription service subscribe referral network lookup failed", err, logger.Fields{
				"userId":     userID,
				"referrerId": referrer.ID,
			})
			return commons.ErrorResponse[models.SubscriptionResponse]("failed to subscribe", "Unable to process subscription right now"), err
		}
		if below {
			return commons.ErrorResponse[models.SubscriptionResponse]("Cannot use a referral code from your own referral network"), domain.ErrReferralCycle
		}
		newReferrer = &referrer
	}

	method := req.Method()
	receipt, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		UserID: user.ID,
		Amount: s.rules.SubscriptionPrice,
		Method: method,
	})
	if err != nil {
		metrics.RecordSubscriptionPayment(string(method), false)
		logger.Error("subscription service payment failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.SubscriptionResponse]("Payment failed", "Payment could not be completed"), err
	}

	description := fmt.Sprintf("CFC %s subscription", s.rules.PlanType)
	activated, err := s.subscriptionRepo.Activate(ctx, domain.Subscription{
		UserID:    user.ID,
		PlanType:  s.rules.PlanType,
		PlanPrice: s.rules.SubscriptionPrice,
		StartDate: now,
		EndDate:   now.Add(s.rules.PlanDuration),
		Status:    domain.SubscriptionStatusActive,
	}, domain.Transaction{
		UserID:      user.ID,
		Amount:      receipt.Amount,
		Type:        domain.TransactionTypeSubscriptionPayment,
		Status:      domain.TransactionStatusCompleted,
		Description: &description,
		ReferenceID: &receipt.Reference,
	})
	if err != nil {
		logger.Error("subscription service activate failed", err, logger.Fields{
			"userId":           userID,
			"paymentReference": receipt.Reference,
		})
		s.refund(ctx, userID, receipt)
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			return commons.ErrorResponse[models.SubscriptionResponse]("Already subscribed"), err
		}
		return commons.ErrorResponse[models.SubscriptionResponse]("failed to subscribe", "Payment received but activation failed"), err
	}
	metrics.RecordSubscriptionPayment(string(method), true)

	if newReferrer != nil {
		if err := s.userRepo.AttachReferrer(ctx, user.ID, newReferrer.ID); err != nil {
			// Lost a race against another attach; keep whatever is stored.
			logger.Error("subscription service attach referrer failed", err, logger.Fields{
				"userId":     user.ID,
				"referrerId": newReferrer.ID,
			})
			if reloaded, reloadErr := s.userRepo.GetByID(ctx, user.ID); reloadErr == nil {
				user = reloaded
			}
		} else {
			user.ReferredBy = &newReferrer.ID
		}
	}

	message := "Subscription activated successfully"
	if err := s.creditReferralChain(ctx, user, receipt.Reference); err != nil {
		logger.Error("subscription service referral credit failed", err, logger.Fields{
			"userId":           user.ID,
			"paymentReference": receipt.Reference,
		})
		message = referralCreditPendingMessage
	}

	response := mapSubscriptionToResponse(activated)
	response.PaymentReference = receipt.Reference

	logger.Info("subscription service subscribe success", logger.Fields{
		"userId":           user.ID,
		"subscriptionId":   activated.ID,
		"paymentReference": receipt.Reference,
	})

	return commons.SuccessResponse(message, response), nil
}

// creditReferralChain pays the direct referrer and, one level up, the indirect referrer.
func (s *SubscriptionService) creditReferralChain(ctx context.Context, user domain.User, reference string) error {
	if user.ReferredBy == nil || *user.ReferredBy == "" {
		return nil
	}
	directID := *user.ReferredBy

	direct, err := s.userRepo.GetByID(ctx, directID)
	if err != nil {
		return fmt.Errorf("load direct referrer: %w", err)
	}
	if direct.ReferredBy != nil && *direct.ReferredBy == user.ID {
		logger.Warn("subscription service mutual referral skipped", logger.Fields{
			"userId":     user.ID,
			"referrerId": directID,
		})
		return nil
	}

	if err := s.credit(ctx, domain.ReferralCredit{
		ReferrerID:     directID,
		ReferredUserID: user.ID,
		Level:          domain.ReferralLevelDirect,
		BonusAmount:    s.rules.DirectBonus,
		ReferenceID:    reference,
	}); err != nil {
		return err
	}

	if direct.ReferredBy == nil {
		return nil
	}
	indirectID := *direct.ReferredBy
	if indirectID == "" || indirectID == user.ID || indirectID == directID {
		return nil
	}

	return s.credit(ctx, domain.ReferralCredit{
		ReferrerID:     indirectID,
		ReferredUserID: user.ID,
		Level:          domain.ReferralLevelIndirect,
		BonusAmount:    s.rules.IndirectBonus,
		ReferenceID:    reference,
	})
}

// refund voids a charge left without a subscription. A failed refund is logged for manual follow-up.
func (s *SubscriptionService) refund(ctx context.Context, userID string, receipt payment.Receipt) {
	if err := s.gateway.Refund(context.WithoutCancel(ctx), receipt); err != nil {
		logger.Error("subscription service orphaned payment needs manual refund", err, logger.Fields{
			"userId":           userID,
			"paymentReference": receipt.Reference,
			"amount":           receipt.Amount,
		})
		return
	}
	logger.Info("subscription service payment refunded", logger.Fields{
		"userId":           userID,
		"paymentReference": receipt.Reference,
	})
}

// inDownline reports whether candidate was referred, directly or further down, by userID.
func (s *SubscriptionService) inDownline(ctx context.Context, userID string, candidate domain.User) (bool, error) {
	seen := map[string]struct{}{candidate.ID: {}}
	current := candidate
	for current.ReferredBy != nil && *current.ReferredBy != "" {
		parentID := *current.ReferredBy
		if parentID == userID {
			return true, nil
		}
		if _, ok := seen[parentID]; ok {
			return false, nil
		}
		seen[parentID] = struct{}{}

		parent, err := s.userRepo.GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("load upline referrer: %w", err)
		}
		current = parent
	}
	return false, nil
}

func (s *SubscriptionService) credit(ctx context.Context, credit domain.ReferralCredit) error {
	credited, err := s.ledgerRepo.AddReferralBonus(ctx, credit, s.rules.MinReferralsToWithdraw)
	if err != nil {
		metrics.RecordReferralCreditFailure(string(credit.Level))
		return fmt.Errorf("credit %s referral bonus: %w", credit.Level, err)
	}

	metrics.RecordReferralCredit(string(credit.Level), credited)
	logger.Info("subscription service referral credit", logger.Fields{
		"referrerId":     credit.ReferrerID,
		"referredUserId": credit.ReferredUserID,
		"level":          credit.Level,
		"credited":       credited,
	})
	return nil
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, userID string) (commons.Response[models.SubscriptionResponse], error) {
	logger.Info("subscription service get subscription request", logger.Fields{
		"userId": userID,
	})

	if strings.TrimSpace(userID) == "" {
		return commons.ErrorResponse[models.SubscriptionResponse]("validation failed", "userId is required"), fmt.Errorf("userId is required")
	}

	subscription, err := s.subscriptionRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.SubscriptionResponse]("Subscription not found"), err
		}
		logger.Error("subscription service get subscription failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.SubscriptionResponse]("failed to get subscription", "Unable to fetch subscription right now"), err
	}

	return commons.SuccessResponse("Subscription fetched successfully", mapSubscriptionToResponse(subscription)), nil
}

func (s *SubscriptionService) ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	expired, err := s.subscriptionRepo.ExpireDue(ctx, now.UTC())
	if err != nil {
		logger.Error("subscription service expire subscriptions failed", err, nil)
		return 0, err
	}

	metrics.RecordExpiredSubscriptions(expired)
	logger.Info("subscription service expire subscriptions", logger.Fields{
		"expired": expired,
	})
	return expired, nil
}
