package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/cache"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/identity"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/cfc-rewards/src/internal/commons"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
	"github.com/api-sage/cfc-rewards/src/internal/metrics"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type TokenIssuer interface {
	Issue(userID string, email string, metadata identity.UserMetadata) (string, time.Time, error)
}

type AuthService struct {
	userRepo repo_interfaces.UserRepository
	tokens   TokenIssuer
	resolver referrerResolver
	rules    domain.ProgramRules
}

func NewAuthService(
	userRepo repo_interfaces.UserRepository,
	tokens TokenIssuer,
	codes cache.ReferralCodeCache,
	rules domain.ProgramRules,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		resolver: newReferrerResolver(userRepo, codes),
		rules:    rules,
	}
}

func (s *AuthService) SignUp(ctx context.Context, req models.SignUpRequest) (commons.Response[models.AuthResponse], error) {
	logger.Info("auth service sign up request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("auth service sign up validation failed", err, nil)
		return commons.ErrorResponse[models.AuthResponse]("validation failed", err.Error()), err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return commons.ErrorResponse[models.AuthResponse]("Email already registered"), domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		logger.Error("auth service sign up email lookup failed", err, nil)
		return commons.ErrorResponse[models.AuthResponse]("failed to sign up", "Unable to create account right now"), err
	}

	var referredBy *string
	if strings.TrimSpace(req.ReferralCode) != "" {
		referrer, err := s.resolver.resolve(ctx, req.ReferralCode)
		if err != nil {
			logger.Error("auth service sign up referral code rejected", err, logger.Fields{
				"referralCode": req.ReferralCode,
			})
			if errors.Is(err, domain.ErrInvalidReferralCode) {
				return commons.ErrorResponse[models.AuthResponse]("Invalid referral code"), err
			}
			return commons.ErrorResponse[models.AuthResponse]("failed to sign up", "Unable to create account right now"), err
		}
		referredBy = &referrer.ID
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		logger.Error("auth service sign up hash password failed", err, nil)
		return commons.ErrorResponse[models.AuthResponse]("failed to sign up", "Unable to create account right now"), err
	}

	created, err := createWithReferralCode(ctx, s.userRepo, domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.FullName),
		Email:        email,
		Mobile:       strings.TrimSpace(req.Phone),
		PasswordHash: passwordHash,
		ReferredBy:   referredBy,
		KYCStatus:    domain.KYCStatusPending,
	}, s.rules.ReferralCodePrefix)
	if err != nil {
		logger.Error("auth service sign up create user failed", err, nil)
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return commons.ErrorResponse[models.AuthResponse]("Email already registered"), err
		}
		return commons.ErrorResponse[models.AuthResponse]("failed to sign up", "Unable to create account right now"), err
	}

	s.resolver.remember(ctx, created)
	metrics.RecordSignup()

	response, err := s.session(created)
	if err != nil {
		logger.Error("auth service sign up issue token failed", err, logger.Fields{
			"userId": created.ID,
		})
		return commons.ErrorResponse[models.AuthResponse]("failed to sign up", "Account created but sign in failed"), err
	}

	logger.Info("auth service sign up success", logger.Fields{
		"userId":       created.ID,
		"referralCode": created.ReferralCode,
		"referred":     referredBy != nil,
	})

	return commons.SuccessResponse("Account created successfully", response), nil
}

func (s *AuthService) SignIn(ctx context.Context, req models.SignInRequest) (commons.Response[models.AuthResponse], error) {
	logger.Info("auth service sign in request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AuthResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			logger.Info("auth service sign in unknown email", nil)
			return commons.ErrorResponse[models.AuthResponse]("Invalid credentials"), domain.ErrInvalidCredentials
		}
		logger.Error("auth service sign in lookup failed", err, nil)
		return commons.ErrorResponse[models.AuthResponse]("failed to sign in", "Unable to sign in right now"), err
	}

	if user.PasswordHash == "" {
		return commons.ErrorResponse[models.AuthResponse]("Invalid credentials"), domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Info("auth service sign in password mismatch", logger.Fields{
				"userId": user.ID,
			})
			return commons.ErrorResponse[models.AuthResponse]("Invalid credentials"), domain.ErrInvalidCredentials
		}
		wrappedErr := fmt.Errorf("compare password: %w", err)
		logger.Error("auth service sign in compare failed", wrappedErr, logger.Fields{
			"userId": user.ID,
		})
		return commons.ErrorResponse[models.AuthResponse]("failed to sign in", "Unable to sign in right now"), wrappedErr
	}

	response, err := s.session(user)
	if err != nil {
		logger.Error("auth service sign in issue token failed", err, logger.Fields{
			"userId": user.ID,
		})
		return commons.ErrorResponse[models.AuthResponse]("failed to sign in", "Unable to sign in right now"), err
	}

	logger.Info("auth service sign in success", logger.Fields{
		"userId": user.ID,
	})

	return commons.SuccessResponse("Signed in successfully", response), nil
}

// EnsureProfile returns the caller's user row, inserting a default one the first time a token is seen.
func (s *AuthService) EnsureProfile(ctx context.Context, claims identity.Claims) (commons.Response[models.ProfileResponse], error) {
	userID := strings.TrimSpace(claims.UserID())
	if userID == "" {
		return commons.ErrorResponse[models.ProfileResponse]("validation failed", "token subject is required"), fmt.Errorf("token subject is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		return commons.SuccessResponse("Profile fetched successfully", mapUserToProfile(user)), nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		logger.Error("auth service ensure profile lookup failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.ProfileResponse]("failed to load profile", "Unable to load profile right now"), err
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	created, err := createWithReferralCode(ctx, s.userRepo, domain.User{
		ID:        userID,
		Name:      defaultProfileName(claims.UserMetadata.FullName, email),
		Email:     email,
		Mobile:    strings.TrimSpace(claims.UserMetadata.Phone),
		KYCStatus: domain.KYCStatusPending,
	}, s.rules.ReferralCodePrefix)
	if err != nil {
		// A concurrent request may have inserted the row first.
		if errors.Is(err, domain.ErrDuplicateRecord) {
			if existing, reloadErr := s.userRepo.GetByID(ctx, userID); reloadErr == nil {
				return commons.SuccessResponse("Profile fetched successfully", mapUserToProfile(existing)), nil
			}
		}
		logger.Error("auth service ensure profile create failed", err, logger.Fields{
			"userId": userID,
		})
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return commons.ErrorResponse[models.ProfileResponse]("Email already registered"), err
		}
		return commons.ErrorResponse[models.ProfileResponse]("failed to load profile", "Unable to create profile right now"), err
	}

	s.resolver.remember(ctx, created)

	logger.Info("auth service ensure profile created", logger.Fields{
		"userId":       created.ID,
		"referralCode": created.ReferralCode,
	})

	return commons.SuccessResponse("Profile created successfully", mapUserToProfile(created)), nil
}

func (s *AuthService) session(user domain.User) (models.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email, identity.UserMetadata{
		FullName: user.Name,
		Phone:    user.Mobile,
	})
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   formatTime(expiresAt),
		User:        mapUserToProfile(user),
	}, nil
}

func defaultProfileName(fullName string, email string) string {
	if trimmed := strings.TrimSpace(fullName); trimmed != "" {
		return trimmed
	}
	if local, _, found := strings.Cut(email, "@"); found && strings.TrimSpace(local) != "" {
		return local
	}
	return "User"
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}
