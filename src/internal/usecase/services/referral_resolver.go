package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/cache"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
)

const (
	referralCodeAlphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	referralCodeLength    = 6
	referralCodeAttempts  = 5
	defaultReferralPrefix = "CFC"
)

// referrerResolver turns a referral code into its owner, going through the cache first.
type referrerResolver struct {
	userRepo repo_interfaces.UserRepository
	codes    cache.ReferralCodeCache
}

func newReferrerResolver(userRepo repo_interfaces.UserRepository, codes cache.ReferralCodeCache) referrerResolver {
	if codes == nil {
		codes = cache.NoopReferralCodeCache{}
	}
	return referrerResolver{userRepo: userRepo, codes: codes}
}

func (r referrerResolver) resolve(ctx context.Context, code string) (domain.User, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.User{}, domain.ErrInvalidReferralCode
	}

	if userID, ok := r.codes.Lookup(ctx, code); ok {
		referrer, err := r.userRepo.GetByID(ctx, userID)
		if err == nil && referrer.ReferralCode == code {
			return referrer, nil
		}
		logger.Warn("referral code cache entry stale", logger.Fields{
			"referralCode": code,
		})
	}

	referrer, err := r.userRepo.GetByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.User{}, domain.ErrInvalidReferralCode
		}
		return domain.User{}, err
	}

	r.codes.Remember(ctx, referrer.ReferralCode, referrer.ID)
	return referrer, nil
}

func (r referrerResolver) remember(ctx context.Context, user domain.User) {
	r.codes.Remember(ctx, user.ReferralCode, user.ID)
}

func generateReferralCode(prefix string) (string, error) {
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultReferralPrefix
	}

	var builder strings.Builder
	builder.WriteString(strings.ToUpper(strings.TrimSpace(prefix)))

	alphabetSize := big.NewInt(int64(len(referralCodeAlphabet)))
	for i := 0; i < referralCodeLength; i++ {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("generate referral code: %w", err)
		}
		builder.WriteByte(referralCodeAlphabet[n.Int64()])
	}

	return builder.String(), nil
}

// createWithReferralCode inserts the user, drawing a new code whenever the previous one collided.
func createWithReferralCode(ctx context.Context, userRepo repo_interfaces.UserRepository, user domain.User, prefix string) (domain.User, error) {
	var lastErr error
	for attempt := 1; attempt <= referralCodeAttempts; attempt++ {
		code, err := generateReferralCode(prefix)
		if err != nil {
			return domain.User{}, err
		}
		user.ReferralCode = code

		created, err := userRepo.Create(ctx, user)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, domain.ErrDuplicateReferralCode) {
			return domain.User{}, err
		}

		logger.Warn("referral code collision", logger.Fields{
			"attempt":      attempt,
			"referralCode": code,
		})
		lastErr = err
	}

	return domain.User{}, fmt.Errorf("referral code retries exhausted: %w", lastErr)
}
