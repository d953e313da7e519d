package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrDuplicateRecord = errors.New("Record already exists")
var ErrDuplicateEmail = errors.New("Email already registered")
var ErrDuplicateReferralCode = errors.New("Referral code already issued")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrWithdrawalNotAllowed = errors.New("Withdrawal not allowed")
var ErrInvalidReferralCode = errors.New("Invalid referral code")
var ErrSelfReferral = errors.New("Cannot use your own referral code")
var ErrReferralCycle = errors.New("Cannot use a referral code from your own referral network")
var ErrAlreadySubscribed = errors.New("Already subscribed")
var ErrInvalidCredentials = errors.New("Invalid credentials")
var ErrInvalidStateTransition = errors.New("Invalid state transition")
