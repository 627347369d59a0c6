package domain

import (
	"errors"
	"time"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmailMismatch   = errors.New("email does not match registered profile")
	ErrOTPInvalid      = errors.New("invalid or expired OTP")
)

// OTPChallenge is a one-time code issued to the operator's email.
type OTPChallenge struct {
	ID         string
	Email      string
	Code       string
	ExpiresAt  time.Time
	IssuedAt   time.Time
	ConsumedAt *time.Time
}

// Expired reports whether the challenge can no longer be redeemed at now.
func (c *OTPChallenge) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}
