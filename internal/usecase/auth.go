package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/email"
	"github.com/ErlanBelekov/portfolio/internal/metrics"
	"github.com/ErlanBelekov/portfolio/internal/repository"
)

const (
	defaultOTPTTL = 10 * time.Minute

	otpMin  = 100000
	otpSpan = 900000 // codes are drawn from [otpMin, otpMin+otpSpan)
)

// Mailer hands a message to out-of-band delivery without waiting for it.
// *email.Queue satisfies it.
type Mailer interface {
	Enqueue(m email.Message) bool
}

type AuthUsecase struct {
	challenges repository.ChallengeRepository
	profiles   repository.ProfileRepository
	mailer     Mailer
	logger     *slog.Logger
	adminEmail string
	siteName   string
	otpTTL     time.Duration
	now        func() time.Time
}

type AuthOption func(*AuthUsecase)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) AuthOption {
	return func(u *AuthUsecase) { u.now = now }
}

// WithAdminEmail pins the operator identity instead of reading it from the profile.
func WithAdminEmail(addr string) AuthOption {
	return func(u *AuthUsecase) { u.adminEmail = strings.TrimSpace(addr) }
}

func WithSiteName(name string) AuthOption {
	return func(u *AuthUsecase) { u.siteName = name }
}

func NewAuthUsecase(
	challenges repository.ChallengeRepository,
	profiles repository.ProfileRepository,
	mailer Mailer,
	logger *slog.Logger,
	opts ...AuthOption,
) *AuthUsecase {
	u := &AuthUsecase{
		challenges: challenges,
		profiles:   profiles,
		mailer:     mailer,
		logger:     logger.With("component", "auth_usecase"),
		siteName:   "Portfolio",
		otpTTL:     defaultOTPTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// IssueChallenge checks emailAddr against the operator identity, stores a fresh
// 6-digit code and queues it for delivery. The response never waits on the email.
func (u *AuthUsecase) IssueChallenge(ctx context.Context, emailAddr string) error {
	identity, err := u.operatorEmail(ctx)
	if err != nil {
		metrics.OTPIssuedTotal.WithLabelValues("no_identity").Inc()
		return err
	}

	if !strings.EqualFold(strings.TrimSpace(emailAddr), identity) {
		metrics.OTPIssuedTotal.WithLabelValues("mismatch").Inc()
		return domain.ErrEmailMismatch
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	now := u.now()
	challenge := &domain.OTPChallenge{
		Email:     identity,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(u.otpTTL),
	}
	if err := u.challenges.Replace(ctx, challenge); err != nil {
		metrics.OTPIssuedTotal.WithLabelValues("store_error").Inc()
		return fmt.Errorf("store challenge: %w", err)
	}

	u.mailer.Enqueue(email.Message{
		Kind:    "otp",
		To:      identity,
		Subject: fmt.Sprintf("Your %s admin code", u.siteName),
		Body: fmt.Sprintf(
			`<p>Your verification code is <strong>%s</strong>.</p><p>It expires in %d minutes.</p>`,
			code, int(u.otpTTL/time.Minute),
		),
	})

	metrics.OTPIssuedTotal.WithLabelValues("issued").Inc()
	u.logger.InfoContext(ctx, "otp challenge issued", "challenge_id", challenge.ID, "expires_at", challenge.ExpiresAt)
	return nil
}

// VerifyChallenge redeems code. Unknown, expired and already-used codes all
// yield domain.ErrOTPInvalid.
func (u *AuthUsecase) VerifyChallenge(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.ErrOTPInvalid
	}

	challenge, err := u.challenges.FindActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrOTPInvalid) {
			metrics.OTPVerifiedTotal.WithLabelValues("invalid").Inc()
			return domain.ErrOTPInvalid
		}
		return fmt.Errorf("find challenge: %w", err)
	}

	now := u.now()
	if challenge.Expired(now) {
		metrics.OTPVerifiedTotal.WithLabelValues("expired").Inc()
		return domain.ErrOTPInvalid
	}

	if err := u.challenges.Consume(ctx, challenge.ID, now); err != nil {
		if errors.Is(err, domain.ErrOTPInvalid) {
			metrics.OTPVerifiedTotal.WithLabelValues("replayed").Inc()
			return domain.ErrOTPInvalid
		}
		return fmt.Errorf("consume challenge: %w", err)
	}

	metrics.OTPVerifiedTotal.WithLabelValues("verified").Inc()
	u.logger.InfoContext(ctx, "otp challenge verified", "challenge_id", challenge.ID)
	return nil
}

func (u *AuthUsecase) operatorEmail(ctx context.Context) (string, error) {
	return resolveOperatorEmail(ctx, u.adminEmail, u.profiles)
}

// resolveOperatorEmail prefers the configured address and falls back to the profile's.
func resolveOperatorEmail(ctx context.Context, adminEmail string, profiles repository.ProfileRepository) (string, error) {
	if adminEmail != "" {
		return adminEmail, nil
	}

	profile, err := profiles.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return "", domain.ErrProfileNotFound
		}
		return "", fmt.Errorf("load profile: %w", err)
	}
	if profile.Email == nil || strings.TrimSpace(*profile.Email) == "" {
		return "", domain.ErrProfileNotFound
	}
	return strings.TrimSpace(*profile.Email), nil
}

// generateCode draws uniformly from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(otpMin+n.Int64(), 10), nil
}
