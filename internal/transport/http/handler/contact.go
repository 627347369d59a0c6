package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/usecase"
	"github.com/gin-gonic/gin"
)

type contactUsecaser interface {
	Create(ctx context.Context, input usecase.CreateContactInput) (*domain.ContactResponse, error)
	List(ctx context.Context) ([]*domain.ContactResponse, error)
	Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.ContactResponse, error)
	Delete(ctx context.Context, id string) error
}

type ContactHandler struct {
	contacts contactUsecaser
	logger   *slog.Logger
}

func NewContactHandler(contacts contactUsecaser, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger.With("component", "contact_handler")}
}

type createContactRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

type updateContactRequest struct {
	IsRead     *bool `json:"is_read"`
	IsArchived *bool `json:"is_archived"`
}

type contactResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	IsArchived bool      `json:"is_archived"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toContactResponse(c *domain.ContactResponse) contactResponse {
	return contactResponse{
		ID:         c.ID,
		Username:   c.Username,
		Email:      c.Email,
		Message:    c.Message,
		IsArchived: c.IsArchived,
		IsRead:     c.IsRead,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// POST /api/contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req createContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := h.contacts.Create(c.Request.Context(), usecase.CreateContactInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrContactIncomplete) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errContactIncomplete})
			return
		}
		storeFailure(c, h.logger, "create contact response", err)
		return
	}
	c.JSON(http.StatusCreated, toContactResponse(contact))
}

// GET /api/contact
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		storeFailure(c, h.logger, "list contact responses", err)
		return
	}

	resp := make([]contactResponse, 0, len(contacts))
	for _, ct := range contacts {
		resp = append(resp, toContactResponse(ct))
	}
	c.JSON(http.StatusOK, resp)
}

// PUT /api/contact/:id
func (h *ContactHandler) Update(c *gin.Context) {
	var req updateContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := h.contacts.Update(c.Request.Context(), c.Param("id"), domain.ContactPatch(req))
	if err != nil {
		h.fail(c, "update contact response", err)
		return
	}
	c.JSON(http.StatusOK, toContactResponse(contact))
}

// DELETE /api/contact/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete contact response", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ContactHandler) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, domain.ErrContactNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": errContactNotFound})
		return
	}
	storeFailure(c, h.logger, op, err)
}
