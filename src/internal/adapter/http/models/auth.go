package models

import (
	"errors"
	"regexp"
	"strings"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	ReferralCode    string `json:"referralCode,omitempty"`
}

func (r SignUpRequest) Validate() error {
	var errs []string

	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	if len(r.Password) < minPasswordLength {
		errs = append(errs, "password must be at least 6 characters")
	}
	if r.Password != r.ConfirmPassword {
		errs = append(errs, "passwords do not match")
	}
	if strings.TrimSpace(r.FullName) == "" {
		errs = append(errs, "fullName is required")
	}
	if strings.TrimSpace(r.Phone) == "" {
		errs = append(errs, "phone is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignInRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type AuthResponse struct {
	AccessToken string          `json:"accessToken"`
	TokenType   string          `json:"tokenType"`
	ExpiresAt   string          `json:"expiresAt"`
	User        ProfileResponse `json:"user"`
}

type ProfileResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Mobile       string  `json:"mobile"`
	ReferralCode string  `json:"referralCode"`
	ReferredBy   *string `json:"referredBy,omitempty"`
	KYCStatus    string  `json:"kycStatus"`
	IsActive     bool    `json:"isActive"`
	CanWithdraw  bool    `json:"canWithdraw"`
	CreatedAt    string  `json:"createdAt"`
}
