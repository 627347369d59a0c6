package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/email"
	"github.com/ErlanBelekov/portfolio/internal/repository"
	"github.com/ErlanBelekov/portfolio/internal/usecase"
)

// ---- fakes ----

// memChallengeRepo mirrors the postgres semantics closely enough to exercise
// replace / expiry / single-use behaviour end to end.
type memChallengeRepo struct {
	mu         sync.Mutex
	seq        int
	challenges []*domain.OTPChallenge
	replaceErr error
	findErr    error
}

func (r *memChallengeRepo) Replace(_ context.Context, c *domain.OTPChallenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replaceErr != nil {
		return r.replaceErr
	}
	kept := r.challenges[:0]
	for _, existing := range r.challenges {
		if existing.Email == c.Email && existing.ConsumedAt == nil {
			continue
		}
		kept = append(kept, existing)
	}
	r.seq++
	c.ID = "ch-" + strconv.Itoa(r.seq)
	stored := *c
	r.challenges = append(kept, &stored)
	return nil
}

func (r *memChallengeRepo) FindActiveByCode(_ context.Context, code string) (*domain.OTPChallenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, c := range r.challenges {
		if c.Code == code && c.ConsumedAt == nil {
			found := *c
			return &found, nil
		}
	}
	return nil, domain.ErrOTPInvalid
}

func (r *memChallengeRepo) Consume(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.challenges {
		if c.ID == id && c.ConsumedAt == nil {
			c.ConsumedAt = &at
			return nil
		}
	}
	return domain.ErrOTPInvalid
}

func (r *memChallengeRepo) PurgeDead(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func (r *memChallengeRepo) all() []*domain.OTPChallenge {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.OTPChallenge(nil), r.challenges...)
}

type fakeProfileRepo struct {
	get    func(ctx context.Context) (*domain.Profile, error)
	upsert func(ctx context.Context, patch repository.ProfilePatch) (*domain.Profile, error)
}

func (r *fakeProfileRepo) Get(ctx context.Context) (*domain.Profile, error) {
	return r.get(ctx)
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, patch repository.ProfilePatch) (*domain.Profile, error) {
	return r.upsert(ctx, patch)
}

type fakeMailer struct {
	mu     sync.Mutex
	msgs   []email.Message
	reject bool
}

func (m *fakeMailer) Enqueue(msg email.Message) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reject {
		return false
	}
	m.msgs = append(m.msgs, msg)
	return true
}

func (m *fakeMailer) sent() []email.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]email.Message(nil), m.msgs...)
}

// ---- helpers ----

const operatorEmail = "a@b.com"

var issuedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func profileWithEmail(addr string) *fakeProfileRepo {
	return &fakeProfileRepo{
		get: func(_ context.Context) (*domain.Profile, error) {
			return &domain.Profile{ID: 1, Name: "Owner", Email: strPtr(addr)}, nil
		},
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newAuth(repo *memChallengeRepo, profiles *fakeProfileRepo, mailer *fakeMailer, c *clock, opts ...usecase.AuthOption) *usecase.AuthUsecase {
	opts = append(opts, usecase.WithClock(c.now))
	return usecase.NewAuthUsecase(repo, profiles, mailer, discardLogger(), opts...)
}

// ---- IssueChallenge ----

func TestIssueChallenge_StoresSixDigitCodeExpiringInTenMinutes(t *testing.T) {
	repo := &memChallengeRepo{}
	c := &clock{t: issuedAt}

	err := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, c).
		IssueChallenge(context.Background(), operatorEmail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.all()
	if len(stored) != 1 {
		t.Fatalf("stored %d challenges, want 1", len(stored))
	}
	ch := stored[0]
	if len(ch.Code) != 6 {
		t.Errorf("code %q has length %d, want 6", ch.Code, len(ch.Code))
	}
	if ch.Email != operatorEmail {
		t.Errorf("email = %q, want %q", ch.Email, operatorEmail)
	}
	if want := issuedAt.Add(10 * time.Minute); !ch.ExpiresAt.Equal(want) {
		t.Errorf("expires_at = %v, want %v", ch.ExpiresAt, want)
	}
	if !ch.IssuedAt.Equal(issuedAt) {
		t.Errorf("issued_at = %v, want %v", ch.IssuedAt, issuedAt)
	}
}

func TestIssueChallenge_CodesStayInRange(t *testing.T) {
	repo := &memChallengeRepo{}
	uc := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, &clock{t: issuedAt})

	for range 500 {
		if err := uc.IssueChallenge(context.Background(), operatorEmail); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		code := repo.all()[0].Code
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric", code)
		}
		if len(code) != 6 || n < 100000 || n > 999999 {
			t.Fatalf("code %q out of range", code)
		}
	}
}

func TestIssueChallenge_KeepsOneOutstandingChallenge(t *testing.T) {
	repo := &memChallengeRepo{}
	uc := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, &clock{t: issuedAt})

	for range 3 {
		if err := uc.IssueChallenge(context.Background(), operatorEmail); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := len(repo.all()); got != 1 {
		t.Errorf("outstanding challenges = %d, want 1", got)
	}
}

func TestIssueChallenge_EmailMismatch_NothingPersisted(t *testing.T) {
	repo := &memChallengeRepo{}
	mailer := &fakeMailer{}

	err := newAuth(repo, profileWithEmail(operatorEmail), mailer, &clock{t: issuedAt}).
		IssueChallenge(context.Background(), "intruder@example.com")
	if !errors.Is(err, domain.ErrEmailMismatch) {
		t.Fatalf("want ErrEmailMismatch, got %v", err)
	}
	if len(repo.all()) != 0 {
		t.Error("challenge persisted despite mismatch")
	}
	if len(mailer.sent()) != 0 {
		t.Error("email queued despite mismatch")
	}
}

func TestIssueChallenge_EmailComparisonIgnoresCaseAndSpace(t *testing.T) {
	repo := &memChallengeRepo{}

	err := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, &clock{t: issuedAt}).
		IssueChallenge(context.Background(), "  A@B.com ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.all()) != 1 {
		t.Error("challenge not persisted")
	}
}

func TestIssueChallenge_NoProfile_ReturnsNotFound(t *testing.T) {
	profiles := &fakeProfileRepo{
		get: func(_ context.Context) (*domain.Profile, error) { return nil, domain.ErrProfileNotFound },
	}

	err := newAuth(&memChallengeRepo{}, profiles, &fakeMailer{}, &clock{t: issuedAt}).
		IssueChallenge(context.Background(), operatorEmail)
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("want ErrProfileNotFound, got %v", err)
	}
}

func TestIssueChallenge_ProfileWithoutEmail_ReturnsNotFound(t *testing.T) {
	profiles := &fakeProfileRepo{
		get: func(_ context.Context) (*domain.Profile, error) { return &domain.Profile{ID: 1}, nil },
	}

	err := newAuth(&memChallengeRepo{}, profiles, &fakeMailer{}, &clock{t: issuedAt}).
		IssueChallenge(context.Background(), operatorEmail)
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("want ErrProfileNotFound, got %v", err)
	}
}

func TestIssueChallenge_ProfileStoreError_Propagates(t *testing.T) {
	storeErr := errors.New("db down")
	profiles := &fakeProfileRepo{
		get: func(_ context.Context) (*domain.Profile, error) { return nil, storeErr },
	}

	err := newAuth(&memChallengeRepo{}, profiles, &fakeMailer{}, &clock{t: issuedAt}).
		IssueChallenge(context.Background(), operatorEmail)
	if !errors.Is(err, storeErr) {
		t.Errorf("want wrapped storeErr, got %v", err)
	}
}

func TestIssueChallenge_AdminEmailOverridesProfile(t *testing.T) {
	profiles := &fakeProfileRepo{
		get: func(_ context.Context) (*domain.Profile, error) {
			t.Fatal("profile store consulted despite ADMIN_EMAIL")
			return nil, nil
		},
	}
	repo := &memChallengeRepo{}

	err := newAuth(repo, profiles, &fakeMailer{}, &clock{t: issuedAt}, usecase.WithAdminEmail("ops@site.dev")).
		IssueChallenge(context.Background(), "ops@site.dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.all()[0].Email; got != "ops@site.dev" {
		t.Errorf("challenge email = %q, want ops@site.dev", got)
	}
}

func TestIssueChallenge_StoreError_PropagatesAndSkipsEmail(t *testing.T) {
	storeErr := errors.New("insert failed")
	mailer := &fakeMailer{}

	err := newAuth(&memChallengeRepo{replaceErr: storeErr}, profileWithEmail(operatorEmail), mailer, &clock{t: issuedAt}).
		IssueChallenge(context.Background(), operatorEmail)
	if !errors.Is(err, storeErr) {
		t.Errorf("want wrapped storeErr, got %v", err)
	}
	if len(mailer.sent()) != 0 {
		t.Error("email queued although the challenge was not stored")
	}
}

func TestIssueChallenge_QueuesCodeForOperator(t *testing.T) {
	repo := &memChallengeRepo{}
	mailer := &fakeMailer{}

	err := newAuth(repo, profileWithEmail(operatorEmail), mailer, &clock{t: issuedAt}).
		IssueChallenge(context.Background(), operatorEmail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := mailer.sent()
	if len(msgs) != 1 {
		t.Fatalf("queued %d emails, want 1", len(msgs))
	}
	if msgs[0].To != operatorEmail || msgs[0].Kind != "otp" {
		t.Errorf("message = %+v", msgs[0])
	}
	if !strings.Contains(msgs[0].Body, repo.all()[0].Code) {
		t.Error("email body does not contain the issued code")
	}
}

func TestIssueChallenge_DroppedEmail_StillSucceeds(t *testing.T) {
	repo := &memChallengeRepo{}

	err := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{reject: true}, &clock{t: issuedAt}).
		IssueChallenge(context.Background(), operatorEmail)
	if err != nil {
		t.Fatalf("delivery failure leaked into the result: %v", err)
	}
	if len(repo.all()) != 1 {
		t.Error("challenge not persisted")
	}
}

// ---- VerifyChallenge ----

func issue(t *testing.T, uc *usecase.AuthUsecase, repo *memChallengeRepo) string {
	t.Helper()
	if err := uc.IssueChallenge(context.Background(), operatorEmail); err != nil {
		t.Fatalf("issue: %v", err)
	}
	return repo.all()[0].Code
}

func TestVerifyChallenge_IssuedCode_Succeeds(t *testing.T) {
	repo := &memChallengeRepo{}
	c := &clock{t: issuedAt}
	uc := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, c)
	code := issue(t, uc, repo)

	c.advance(9 * time.Minute)
	if err := uc.VerifyChallenge(context.Background(), code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.all()[0].ConsumedAt == nil {
		t.Error("challenge not marked consumed")
	}
}

func TestVerifyChallenge_NeverIssued_ReturnsInvalid(t *testing.T) {
	repo := &memChallengeRepo{}
	uc := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, &clock{t: issuedAt})

	if err := uc.VerifyChallenge(context.Background(), "123456"); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Errorf("want ErrOTPInvalid, got %v", err)
	}
}

func TestVerifyChallenge_EmptyCode_ReturnsInvalid(t *testing.T) {
	repo := &memChallengeRepo{findErr: errors.New("must not be called")}
	uc := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, &clock{t: issuedAt})

	if err := uc.VerifyChallenge(context.Background(), "   "); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Errorf("want ErrOTPInvalid, got %v", err)
	}
}

func TestVerifyChallenge_ElevenMinutesLater_ReturnsInvalid(t *testing.T) {
	repo := &memChallengeRepo{}
	c := &clock{t: issuedAt}
	uc := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, c)
	code := issue(t, uc, repo)

	c.advance(11 * time.Minute)
	if err := uc.VerifyChallenge(context.Background(), code); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Errorf("want ErrOTPInvalid, got %v", err)
	}
	if repo.all()[0].ConsumedAt != nil {
		t.Error("expired challenge was consumed")
	}
}

func TestVerifyChallenge_ExactlyAtExpiry_ReturnsInvalid(t *testing.T) {
	repo := &memChallengeRepo{}
	c := &clock{t: issuedAt}
	uc := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, c)
	code := issue(t, uc, repo)

	c.advance(10 * time.Minute)
	if err := uc.VerifyChallenge(context.Background(), code); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Errorf("want ErrOTPInvalid, got %v", err)
	}
}

func TestVerifyChallenge_Replay_ReturnsInvalid(t *testing.T) {
	repo := &memChallengeRepo{}
	uc := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, &clock{t: issuedAt})
	code := issue(t, uc, repo)

	if err := uc.VerifyChallenge(context.Background(), code); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if err := uc.VerifyChallenge(context.Background(), code); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Errorf("second verify: want ErrOTPInvalid, got %v", err)
	}
}

func TestVerifyChallenge_FailedAttemptsDoNotLockOut(t *testing.T) {
	repo := &memChallengeRepo{}
	uc := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, &clock{t: issuedAt})
	code := issue(t, uc, repo)

	wrong := "100000"
	if code == wrong {
		wrong = "100001"
	}
	for range 5 {
		if err := uc.VerifyChallenge(context.Background(), wrong); !errors.Is(err, domain.ErrOTPInvalid) {
			t.Fatalf("want ErrOTPInvalid, got %v", err)
		}
	}
	if err := uc.VerifyChallenge(context.Background(), code); err != nil {
		t.Errorf("correct code rejected after failed attempts: %v", err)
	}
}

func TestVerifyChallenge_ReissueInvalidatesPreviousCode(t *testing.T) {
	repo := &memChallengeRepo{}
	uc := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, &clock{t: issuedAt})
	first := issue(t, uc, repo)
	second := issue(t, uc, repo)
	if first == second {
		t.Skip("codes collided")
	}

	if err := uc.VerifyChallenge(context.Background(), first); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Errorf("superseded code: want ErrOTPInvalid, got %v", err)
	}
	if err := uc.VerifyChallenge(context.Background(), second); err != nil {
		t.Errorf("latest code rejected: %v", err)
	}
}

func TestVerifyChallenge_StoreError_IsNotInvalid(t *testing.T) {
	storeErr := errors.New("db down")
	repo := &memChallengeRepo{findErr: storeErr}
	uc := newAuth(repo, profileWithEmail(operatorEmail), &fakeMailer{}, &clock{t: issuedAt})

	err := uc.VerifyChallenge(context.Background(), "123456")
	if !errors.Is(err, storeErr) {
		t.Errorf("want wrapped storeErr, got %v", err)
	}
	if errors.Is(err, domain.ErrOTPInvalid) {
		t.Error("store failure reported as invalid code")
	}
}
