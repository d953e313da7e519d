package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	userRepo         repo_interfaces.UserRepository
	referralRepo     repo_interfaces.ReferralRepository
	subscriptionRepo repo_interfaces.SubscriptionRepository
	rules            domain.ProgramRules
	publicBaseURL    string
}

func NewDashboardService(
	userRepo repo_interfaces.UserRepository,
	referralRepo repo_interfaces.ReferralRepository,
	subscriptionRepo repo_interfaces.SubscriptionRepository,
	rules domain.ProgramRules,
	publicBaseURL string,
) *DashboardService {
	return &DashboardService{
		userRepo:         userRepo,
		referralRepo:     referralRepo,
		subscriptionRepo: subscriptionRepo,
		rules:            rules,
		publicBaseURL:    strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context, userID string) (commons.Response[models.DashboardResponse], error) {
	logger.Info("dashboard service get dashboard request", logger.Fields{
		"userId": userID,
	})

	if strings.TrimSpace(userID) == "" {
		return commons.ErrorResponse[models.DashboardResponse]("validation failed", "userId is required"), fmt.Errorf("userId is required")
	}

	var (
		user         domain.User
		referrals    []domain.Referral
		directCount  int
		subscription *domain.Subscription
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		user, err = s.userRepo.GetByID(groupCtx, userID)
		return err
	})
	group.Go(func() error {
		var err error
		referrals, err = s.referralRepo.ListByReferrer(groupCtx, userID)
		return err
	})
	group.Go(func() error {
		var err error
		directCount, err = s.referralRepo.CountByReferrer(groupCtx, userID, domain.ReferralLevelDirect)
		return err
	})
	group.Go(func() error {
		latest, err := s.subscriptionRepo.GetLatestByUserID(groupCtx, userID)
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		subscription = &latest
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error("dashboard service get dashboard failed", err, logger.Fields{
			"userId": userID,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.DashboardResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.DashboardResponse]("failed to get dashboard", "Unable to fetch dashboard right now"), err
	}

	response := models.DashboardResponse{
		Profile: mapUserToProfile(user),
		Stats: models.DashboardStats{
			Balance:           formatAmount(user.Balance),
			ReferralBonus:     formatAmount(user.ReferralBonus),
			ReferralCount:     len(referrals),
			DirectReferrals:   directCount,
			IndirectReferrals: len(referrals) - directCount,
			KYCStatus:         string(user.KYCStatus),
			CanWithdraw:       user.CanWithdraw,
		},
		ReferralLink: s.referralLink(user.ReferralCode),
		Referrals:    make([]models.ReferralResponse, 0, len(referrals)),
	}
	for _, referral := range referrals {
		response.Referrals = append(response.Referrals, mapReferralToResponse(referral))
	}
	if subscription != nil {
		mapped := mapSubscriptionToResponse(*subscription)
		response.Subscription = &mapped
	}
	if !user.CanWithdraw {
		hint := withdrawHint(s.rules.MinReferralsToWithdraw)
		response.WithdrawHint = &hint
	}

	logger.Info("dashboard service get dashboard success", logger.Fields{
		"userId":    userID,
		"referrals": len(referrals),
	})

	return commons.SuccessResponse("Dashboard fetched successfully", response), nil
}

func (s *DashboardService) ListReferrals(ctx context.Context, userID string) (commons.Response[[]models.ReferralResponse], error) {
	if strings.TrimSpace(userID) == "" {
		return commons.ErrorResponse[[]models.ReferralResponse]("validation failed", "userId is required"), fmt.Errorf("userId is required")
	}

	referrals, err := s.referralRepo.ListByReferrer(ctx, userID)
	if err != nil {
		logger.Error("dashboard service list referrals failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[[]models.ReferralResponse]("failed to list referrals", "Unable to fetch referrals right now"), err
	}

	response := make([]models.ReferralResponse, 0, len(referrals))
	for _, referral := range referrals {
		response = append(response, mapReferralToResponse(referral))
	}

	return commons.SuccessResponse("Referrals fetched successfully", response), nil
}

func (s *DashboardService) referralLink(code string) string {
	return s.publicBaseURL + "/auth?mode=signup&ref=" + url.QueryEscape(code)
}
