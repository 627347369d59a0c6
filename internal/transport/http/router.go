package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/portfolio/internal/transport/http/handler"
	"github.com/ErlanBelekov/portfolio/internal/transport/http/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Project *handler.ProjectHandler
	Blog    *handler.BlogHandler
	Profile *handler.ProfileHandler
	Contact *handler.ContactHandler
	Page    *handler.PageHandler
}

type sessionChecker interface {
	Credential(r *http.Request) string
	Valid(credential string) bool
}

// NewRouter wires middleware and routes. Every route sits behind the gate;
// which ones need a session is decided by the access policy, not by grouping.
func NewRouter(logger *slog.Logger, h Handlers, sessions sessionChecker, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Gate(sessions))

	r.SetHTMLTemplate(handler.Templates())
	r.StaticFS("/static", handler.StaticFS())

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/send-otp", h.Auth.SendOTP)
	auth.POST("/verify-otp", h.Auth.VerifyOTP)
	auth.POST("/logout", h.Auth.Logout)

	projects := api.Group("/projects")
	projects.GET("", h.Project.List)
	projects.GET("/:id", h.Project.GetByID)
	projects.POST("", h.Project.Create)
	projects.PUT("/:id", h.Project.Update)
	projects.DELETE("/:id", h.Project.Delete)

	blogs := api.Group("/blogs")
	blogs.GET("", h.Blog.List)
	blogs.GET("/:id", h.Blog.GetByID)
	blogs.POST("", h.Blog.Create)
	blogs.PUT("/:id", h.Blog.Update)
	blogs.DELETE("/:id", h.Blog.Delete)

	api.GET("/profile", h.Profile.Get)
	api.PUT("/profile", h.Profile.Update)

	contact := api.Group("/contact")
	contact.POST("", h.Contact.Create)
	contact.GET("", h.Contact.List)
	contact.PUT("/:id", h.Contact.Update)
	contact.DELETE("/:id", h.Contact.Delete)

	r.GET("/", h.Page.Index)
	r.POST("/contact", h.Page.SubmitContact)
	r.GET("/auth/login", h.Page.Login)
	r.POST("/auth/login", h.Page.SubmitLogin)
	r.POST("/auth/logout", h.Page.Logout)

	admin := r.Group("/admin")
	admin.GET("", h.Page.Admin)
	admin.POST("/profile", h.Page.UpdateProfile)
	admin.POST("/projects", h.Page.CreateProject)
	admin.POST("/projects/:id/delete", h.Page.DeleteProject)
	admin.POST("/blogs", h.Page.CreateBlog)
	admin.POST("/blogs/:id/delete", h.Page.DeleteBlog)
	admin.POST("/blogs/:id/publish", h.Page.TogglePublish)
	admin.POST("/contact/:id/read", h.Page.MarkContactRead)
	admin.POST("/contact/:id/archive", h.Page.ArchiveContact)
	admin.POST("/contact/:id/delete", h.Page.DeleteContact)

	return r
}
