package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/models"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/identity"
	"github.com/api-sage/cfc-rewards/src/internal/domain"
	"github.com/api-sage/cfc-rewards/src/internal/usecase/services"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func validSignUp() models.SignUpRequest {
	return models.SignUpRequest{
		Email:           "Ada@Example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		FullName:        "Ada Lovelace",
		Phone:           "9999999999",
	}
}

func TestAuthServiceSignUpValidationError(t *testing.T) {
	svc := services.NewAuthService(&userRepoStub{}, tokenIssuerStub{}, nil, domain.DefaultProgramRules())

	response, err := svc.SignUp(context.Background(), models.SignUpRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty sign up request")
	}
	if response.Message != "validation failed" {
		t.Fatalf("expected validation failed message, got %q", response.Message)
	}
}

func TestAuthServiceSignUpDuplicateEmail(t *testing.T) {
	repo := &userRepoStub{
		getByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
			return domain.User{ID: "existing", Email: email}, nil
		},
	}
	svc := services.NewAuthService(repo, tokenIssuerStub{}, nil, domain.DefaultProgramRules())

	_, err := svc.SignUp(context.Background(), validSignUp())
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthServiceSignUpUnknownReferralCode(t *testing.T) {
	svc := services.NewAuthService(&userRepoStub{}, tokenIssuerStub{}, nil, domain.DefaultProgramRules())

	req := validSignUp()
	req.ReferralCode = "CFCNOPE00"
	response, err := svc.SignUp(context.Background(), req)
	if !errors.Is(err, domain.ErrInvalidReferralCode) {
		t.Fatalf("expected ErrInvalidReferralCode, got %v", err)
	}
	if response.Message != "Invalid referral code" {
		t.Fatalf("unexpected message %q", response.Message)
	}
}

func TestAuthServiceSignUpSuccessWithReferrer(t *testing.T) {
	var created domain.User
	repo := &userRepoStub{
		getByReferralCodeFn: func(ctx context.Context, code string) (domain.User, error) {
			if code != "CFCABC123" {
				t.Fatalf("expected normalised code, got %q", code)
			}
			return domain.User{ID: "referrer-1", ReferralCode: code}, nil
		},
		createFn: func(ctx context.Context, user domain.User) (domain.User, error) {
			created = user
			return user, nil
		},
	}
	svc := services.NewAuthService(repo, tokenIssuerStub{}, nil, domain.DefaultProgramRules())

	req := validSignUp()
	req.ReferralCode = " cfcabc123 "
	response, err := svc.SignUp(context.Background(), req)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if created.Email != "ada@example.com" {
		t.Fatalf("expected lower-cased email, got %q", created.Email)
	}
	if created.ReferredBy == nil || *created.ReferredBy != "referrer-1" {
		t.Fatalf("expected referrer-1 as referrer, got %v", created.ReferredBy)
	}
	if !strings.HasPrefix(created.ReferralCode, "CFC") || len(created.ReferralCode) != 9 {
		t.Fatalf("unexpected referral code %q", created.ReferralCode)
	}
	if created.ReferralCode != strings.ToUpper(created.ReferralCode) {
		t.Fatalf("expected upper-case referral code, got %q", created.ReferralCode)
	}
	if created.KYCStatus != domain.KYCStatusPending {
		t.Fatalf("expected pending kyc, got %q", created.KYCStatus)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("expected bcrypt hash of password, got %v", err)
	}
	if response.Data == nil || response.Data.AccessToken != "token-"+created.ID {
		t.Fatalf("expected session token for created user, got %+v", response.Data)
	}
}

func TestAuthServiceSignUpRetriesReferralCodeCollision(t *testing.T) {
	attempts := 0
	repo := &userRepoStub{
		createFn: func(ctx context.Context, user domain.User) (domain.User, error) {
			attempts++
			if attempts < 3 {
				return domain.User{}, domain.ErrDuplicateReferralCode
			}
			return user, nil
		},
	}
	svc := services.NewAuthService(repo, tokenIssuerStub{}, nil, domain.DefaultProgramRules())

	if _, err := svc.SignUp(context.Background(), validSignUp()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 create attempts, got %d", attempts)
	}
}

func TestAuthServiceSignUpGivesUpAfterFiveCollisions(t *testing.T) {
	attempts := 0
	repo := &userRepoStub{
		createFn: func(ctx context.Context, user domain.User) (domain.User, error) {
			attempts++
			return domain.User{}, domain.ErrDuplicateReferralCode
		},
	}
	svc := services.NewAuthService(repo, tokenIssuerStub{}, nil, domain.DefaultProgramRules())

	if _, err := svc.SignUp(context.Background(), validSignUp()); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 5 {
		t.Fatalf("expected 5 create attempts, got %d", attempts)
	}
}

func TestAuthServiceSignInRejectsWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := &userRepoStub{
		getByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
			return domain.User{ID: "u-1", Email: email, PasswordHash: string(hash)}, nil
		},
	}
	svc := services.NewAuthService(repo, tokenIssuerStub{}, nil, domain.DefaultProgramRules())

	_, err = svc.SignIn(context.Background(), models.SignInRequest{Email: "ada@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	response, err := svc.SignIn(context.Background(), models.SignInRequest{Email: "ada@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if response.Data.AccessToken != "token-u-1" {
		t.Fatalf("unexpected token %q", response.Data.AccessToken)
	}
}

func TestAuthServiceSignInUnknownEmail(t *testing.T) {
	svc := services.NewAuthService(&userRepoStub{}, tokenIssuerStub{}, nil, domain.DefaultProgramRules())

	_, err := svc.SignIn(context.Background(), models.SignInRequest{Email: "nobody@example.com", Password: "secret1"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func externalClaims(subject string, email string, fullName string) identity.Claims {
	return identity.Claims{
		Email:        email,
		UserMetadata: identity.UserMetadata{FullName: fullName},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: subject,
		},
	}
}

func TestAuthServiceEnsureProfileReturnsExistingUser(t *testing.T) {
	repo := &userRepoStub{
		getByIDFn: func(ctx context.Context, id string) (domain.User, error) {
			return domain.User{ID: id, Name: "Ada"}, nil
		},
		createFn: func(ctx context.Context, user domain.User) (domain.User, error) {
			t.Fatal("create must not be called for an existing user")
			return domain.User{}, nil
		},
	}
	svc := services.NewAuthService(repo, tokenIssuerStub{}, nil, domain.DefaultProgramRules())

	response, err := svc.EnsureProfile(context.Background(), externalClaims("u-1", "ada@example.com", ""))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if response.Data.Name != "Ada" {
		t.Fatalf("expected stored name, got %q", response.Data.Name)
	}
}

func TestAuthServiceEnsureProfileDefaultsNameToEmailLocalPart(t *testing.T) {
	var created domain.User
	repo := &userRepoStub{
		createFn: func(ctx context.Context, user domain.User) (domain.User, error) {
			created = user
			return user, nil
		},
	}
	svc := services.NewAuthService(repo, tokenIssuerStub{}, nil, domain.DefaultProgramRules())

	if _, err := svc.EnsureProfile(context.Background(), externalClaims("u-9", "grace@example.com", "  ")); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.ID != "u-9" {
		t.Fatalf("expected token subject as id, got %q", created.ID)
	}
	if created.Name != "grace" {
		t.Fatalf("expected email local part as name, got %q", created.Name)
	}
	if created.KYCStatus != domain.KYCStatusPending {
		t.Fatalf("expected pending kyc, got %q", created.KYCStatus)
	}
}

func TestAuthServiceEnsureProfileFallsBackToUser(t *testing.T) {
	var created domain.User
	repo := &userRepoStub{
		createFn: func(ctx context.Context, user domain.User) (domain.User, error) {
			created = user
			return user, nil
		},
	}
	svc := services.NewAuthService(repo, tokenIssuerStub{}, nil, domain.DefaultProgramRules())

	if _, err := svc.EnsureProfile(context.Background(), externalClaims("u-10", "", "")); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Name != "User" {
		t.Fatalf("expected fallback name User, got %q", created.Name)
	}
}

func TestAuthServiceEnsureProfileReloadsAfterInsertRace(t *testing.T) {
	lookups := 0
	repo := &userRepoStub{
		getByIDFn: func(ctx context.Context, id string) (domain.User, error) {
			lookups++
			if lookups == 1 {
				return domain.User{}, domain.ErrRecordNotFound
			}
			return domain.User{ID: id, Name: "Winner"}, nil
		},
		createFn: func(ctx context.Context, user domain.User) (domain.User, error) {
			return domain.User{}, errors.Join(errors.New("create user"), domain.ErrDuplicateRecord)
		},
	}
	svc := services.NewAuthService(repo, tokenIssuerStub{}, nil, domain.DefaultProgramRules())

	response, err := svc.EnsureProfile(context.Background(), externalClaims("u-1", "ada@example.com", "Ada"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if response.Data.Name != "Winner" {
		t.Fatalf("expected reloaded row, got %q", response.Data.Name)
	}
}
