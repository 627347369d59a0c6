package usecase

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/email"
	"github.com/ErlanBelekov/portfolio/internal/repository"
)

type ContactUsecase struct {
	repo       repository.ContactRepository
	profiles   repository.ProfileRepository
	mailer     Mailer
	logger     *slog.Logger
	adminEmail string
}

func NewContactUsecase(
	repo repository.ContactRepository,
	profiles repository.ProfileRepository,
	mailer Mailer,
	logger *slog.Logger,
	adminEmail string,
) *ContactUsecase {
	return &ContactUsecase{
		repo:       repo,
		profiles:   profiles,
		mailer:     mailer,
		logger:     logger.With("component", "contact_usecase"),
		adminEmail: strings.TrimSpace(adminEmail),
	}
}

type CreateContactInput struct {
	Username string
	Email    string
	Message  string
}

// Create stores a visitor message and queues a notification for the operator.
// The notification is best effort: a missing operator address only logs.
func (u *ContactUsecase) Create(ctx context.Context, input CreateContactInput) (*domain.ContactResponse, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)
	if input.Username == "" || input.Email == "" || input.Message == "" {
		return nil, domain.ErrContactIncomplete
	}

	created, err := u.repo.Create(ctx, &domain.ContactResponse{
		Username: input.Username,
		Email:    input.Email,
		Message:  input.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("create contact response: %w", err)
	}

	u.notify(ctx, created)
	return created, nil
}

func (u *ContactUsecase) notify(ctx context.Context, c *domain.ContactResponse) {
	to, err := resolveOperatorEmail(ctx, u.adminEmail, u.profiles)
	if err != nil {
		u.logger.WarnContext(ctx, "skip contact notification", "contact_id", c.ID, "error", err)
		return
	}

	u.mailer.Enqueue(email.Message{
		Kind:    "contact",
		To:      to,
		Subject: "New message from " + c.Username,
		Body: fmt.Sprintf(
			"<p><strong>%s</strong> &lt;%s&gt; wrote:</p><p>%s</p>",
			html.EscapeString(c.Username), html.EscapeString(c.Email), html.EscapeString(c.Message),
		),
	})
}

func (u *ContactUsecase) List(ctx context.Context) ([]*domain.ContactResponse, error) {
	contacts, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact responses: %w", err)
	}
	return contacts, nil
}

func (u *ContactUsecase) Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.ContactResponse, error) {
	contact, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update contact response: %w", err)
	}
	return contact, nil
}

func (u *ContactUsecase) Delete(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact response: %w", err)
	}
	return nil
}
