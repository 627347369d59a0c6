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

type projectUsecaser interface {
	Create(ctx context.Context, input usecase.CreateProjectInput) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, featuredOnly bool) ([]*domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type ProjectHandler struct {
	projects projectUsecaser
	logger   *slog.Logger
}

func NewProjectHandler(projects projectUsecaser, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger.With("component", "project_handler")}
}

type createProjectRequest struct {
	Title            string  `json:"title"             binding:"required"`
	QuickDescription string  `json:"quick_description"`
	FullDescription  *string `json:"full_description"`
	YouTubeLink      *string `json:"youtube_link"      binding:"omitempty,url"`
	ProjectURL       *string `json:"project_url"       binding:"omitempty,url"`
	ImageURL         *string `json:"image_url"         binding:"omitempty,url"`
	Category         string  `json:"category"          binding:"required"`
	IsFeatured       bool    `json:"is_featured"`
}

type updateProjectRequest struct {
	Title            *string `json:"title"`
	QuickDescription *string `json:"quick_description"`
	FullDescription  *string `json:"full_description"`
	YouTubeLink      *string `json:"youtube_link"`
	ProjectURL       *string `json:"project_url"`
	ImageURL         *string `json:"image_url"`
	Category         *string `json:"category"`
	IsFeatured       *bool   `json:"is_featured"`
}

type projectResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	QuickDescription string    `json:"quick_description"`
	FullDescription  *string   `json:"full_description"`
	YouTubeLink      *string   `json:"youtube_link"`
	ProjectURL       *string   `json:"project_url"`
	ImageURL         *string   `json:"image_url"`
	Category         string    `json:"category"`
	IsFeatured       bool      `json:"is_featured"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:               p.ID,
		Title:            p.Title,
		QuickDescription: p.QuickDescription,
		FullDescription:  p.FullDescription,
		YouTubeLink:      p.YouTubeLink,
		ProjectURL:       p.ProjectURL,
		ImageURL:         p.ImageURL,
		Category:         p.Category,
		IsFeatured:       p.IsFeatured,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// GET /api/projects?featured=true
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context(), c.Query("featured") == "true")
	if err != nil {
		storeFailure(c, h.logger, "list projects", err)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	project, err := h.projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get project", err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projects.Create(c.Request.Context(), usecase.CreateProjectInput{
		Title:            req.Title,
		QuickDescription: req.QuickDescription,
		FullDescription:  req.FullDescription,
		YouTubeLink:      req.YouTubeLink,
		ProjectURL:       req.ProjectURL,
		ImageURL:         req.ImageURL,
		Category:         req.Category,
		IsFeatured:       req.IsFeatured,
	})
	if err != nil {
		storeFailure(c, h.logger, "create project", err)
		return
	}
	c.JSON(http.StatusCreated, toProjectResponse(project))
}

// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req updateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projects.Update(c.Request.Context(), c.Param("id"), domain.ProjectPatch{
		Title:            req.Title,
		QuickDescription: req.QuickDescription,
		FullDescription:  req.FullDescription,
		YouTubeLink:      req.YouTubeLink,
		ProjectURL:       req.ProjectURL,
		ImageURL:         req.ImageURL,
		Category:         req.Category,
		IsFeatured:       req.IsFeatured,
	})
	if err != nil {
		h.fail(c, "update project", err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProjectHandler) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, domain.ErrProjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": errProjectNotFound})
		return
	}
	storeFailure(c, h.logger, op, err)
}
