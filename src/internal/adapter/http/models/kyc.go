package models

import (
	"errors"
	"regexp"
	"strings"
)

var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

type SubmitKYCRequest struct {
	AadhaarNumber    string `json:"aadhaarNumber"`
	PANNumber        string `json:"panNumber"`
	AadhaarImagePath string `json:"aadhaarImagePath"`
	PANImagePath     string `json:"panImagePath"`
}

func (r SubmitKYCRequest) Validate() error {
	var errs []string

	aadhaar := strings.ReplaceAll(strings.TrimSpace(r.AadhaarNumber), " ", "")
	if len(aadhaar) != 12 || !isDigits(aadhaar) {
		errs = append(errs, "aadhaarNumber must be 12 digits")
	}
	if !panPattern.MatchString(strings.ToUpper(strings.TrimSpace(r.PANNumber))) {
		errs = append(errs, "panNumber must be a valid PAN")
	}
	if strings.TrimSpace(r.AadhaarImagePath) == "" {
		errs = append(errs, "aadhaarImagePath is required")
	}
	if strings.TrimSpace(r.PANImagePath) == "" {
		errs = append(errs, "panImagePath is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type KYCResponse struct {
	UserID    string `json:"userId"`
	KYCStatus string `json:"kycStatus"`
}
