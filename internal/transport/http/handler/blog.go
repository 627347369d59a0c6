package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/transport/http/middleware"
	"github.com/ErlanBelekov/portfolio/internal/usecase"
	"github.com/gin-gonic/gin"
)

type blogUsecaser interface {
	Create(ctx context.Context, input usecase.CreateBlogInput) (*domain.Blog, error)
	GetByID(ctx context.Context, id string, includeDrafts bool) (*domain.Blog, error)
	List(ctx context.Context, publishedOnly bool) ([]*domain.Blog, error)
	Update(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error)
	TogglePublished(ctx context.Context, id string) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}

type BlogHandler struct {
	blogs  blogUsecaser
	logger *slog.Logger
}

func NewBlogHandler(blogs blogUsecaser, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, logger: logger.With("component", "blog_handler")}
}

type createBlogRequest struct {
	Title       string  `json:"title"       binding:"required"`
	Description string  `json:"description" binding:"required"`
	Content     *string `json:"content"`
	ImageURL    *string `json:"image_url"   binding:"omitempty,url"`
	Category    string  `json:"category"    binding:"required"`
	IsPublished bool    `json:"is_published"`
}

type updateBlogRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	ImageURL    *string `json:"image_url"`
	Category    *string `json:"category"`
	IsPublished *bool   `json:"is_published"`
}

type blogResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     *string   `json:"content"`
	ImageURL    *string   `json:"image_url"`
	Category    string    `json:"category"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toBlogResponse(b *domain.Blog) blogResponse {
	return blogResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Content:     b.Content,
		ImageURL:    b.ImageURL,
		Category:    b.Category,
		IsPublished: b.IsPublished,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// GET /api/blogs?published=true
// Anonymous callers only ever see published posts.
func (h *BlogHandler) List(c *gin.Context) {
	publishedOnly := c.Query("published") == "true" || !middleware.SessionValid(c)

	blogs, err := h.blogs.List(c.Request.Context(), publishedOnly)
	if err != nil {
		storeFailure(c, h.logger, "list blogs", err)
		return
	}

	resp := make([]blogResponse, 0, len(blogs))
	for _, b := range blogs {
		resp = append(resp, toBlogResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/blogs/:id
func (h *BlogHandler) GetByID(c *gin.Context) {
	blog, err := h.blogs.GetByID(c.Request.Context(), c.Param("id"), middleware.SessionValid(c))
	if err != nil {
		h.fail(c, "get blog", err)
		return
	}
	c.JSON(http.StatusOK, toBlogResponse(blog))
}

// POST /api/blogs
func (h *BlogHandler) Create(c *gin.Context) {
	var req createBlogRequest
	if !bindJSON(c, &req) {
		return
	}

	blog, err := h.blogs.Create(c.Request.Context(), usecase.CreateBlogInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		storeFailure(c, h.logger, "create blog", err)
		return
	}
	c.JSON(http.StatusCreated, toBlogResponse(blog))
}

// PUT /api/blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	var req updateBlogRequest
	if !bindJSON(c, &req) {
		return
	}

	blog, err := h.blogs.Update(c.Request.Context(), c.Param("id"), domain.BlogPatch{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		h.fail(c, "update blog", err)
		return
	}
	c.JSON(http.StatusOK, toBlogResponse(blog))
}

// DELETE /api/blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.blogs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete blog", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *BlogHandler) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, domain.ErrBlogNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": errBlogNotFound})
		return
	}
	storeFailure(c, h.logger, op, err)
}
