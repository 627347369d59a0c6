package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/repository"
	"github.com/gin-gonic/gin"
)

type profileUsecaser interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Update(ctx context.Context, patch repository.ProfilePatch) (*domain.Profile, error)
}

type ProfileHandler struct {
	profiles profileUsecaser
	logger   *slog.Logger
}

func NewProfileHandler(profiles profileUsecaser, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger.With("component", "profile_handler")}
}

type socialPayload struct {
	Twitter  string `json:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	YouTube  string `json:"youtube,omitempty"`
}

type updateProfileRequest struct {
	Name      *string        `json:"name"`
	Bio       *string        `json:"bio"`
	AvatarURL *string        `json:"avatar_url" binding:"omitempty,url"`
	Social    *socialPayload `json:"social"`
	CVURL     *string        `json:"cv_url"     binding:"omitempty,url"`
	Contact   *string        `json:"contact"`
	Email     *string        `json:"email"      binding:"omitempty,email"`
}

type profileResponse struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Bio       *string       `json:"bio"`
	AvatarURL *string       `json:"avatar_url"`
	Social    socialPayload `json:"social"`
	CVURL     *string       `json:"cv_url"`
	Contact   *string       `json:"contact"`
	Email     *string       `json:"email"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		Social:    socialPayload(p.Social),
		CVURL:     p.CVURL,
		Contact:   p.Contact,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r updateProfileRequest) patch() repository.ProfilePatch {
	patch := repository.ProfilePatch{
		Name:      r.Name,
		Bio:       r.Bio,
		AvatarURL: r.AvatarURL,
		CVURL:     r.CVURL,
		Contact:   r.Contact,
		Email:     r.Email,
	}
	if r.Social != nil {
		s := domain.Social(*r.Social)
		patch.Social = &s
	}
	return patch
}

// GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errProfileNotFound})
			return
		}
		storeFailure(c, h.logger, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

// PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), req.patch())
	if err != nil {
		storeFailure(c, h.logger, "update profile", err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}
