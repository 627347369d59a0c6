package handler

import (
	"cmp"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/ErlanBelekov/portfolio/internal/access"
	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/repository"
	"github.com/ErlanBelekov/portfolio/internal/usecase"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates returns the parsed page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(
		template.New("pages").
			Funcs(template.FuncMap{
				"deref": func(s *string) string {
					if s == nil {
						return ""
					}
					return *s
				},
				"date": func(t time.Time) string { return t.Format("Jan 2, 2006") },
			}).
			ParseFS(templatesFS, "templates/*.html"),
	)
}

// StaticFS serves the stylesheet and other bundled assets under /static.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// PageHandler renders the public site, the login surface and the admin dashboard.
type PageHandler struct {
	siteName string
	auth     authUsecaser
	sessions sessionManager
	profiles profileUsecaser
	projects projectUsecaser
	blogs    blogUsecaser
	contacts contactUsecaser
	logger   *slog.Logger
}

type PageDeps struct {
	SiteName string
	Auth     authUsecaser
	Sessions sessionManager
	Profiles profileUsecaser
	Projects projectUsecaser
	Blogs    blogUsecaser
	Contacts contactUsecaser
}

func NewPageHandler(deps PageDeps, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		siteName: deps.SiteName,
		auth:     deps.Auth,
		sessions: deps.Sessions,
		profiles: deps.Profiles,
		projects: deps.Projects,
		blogs:    deps.Blogs,
		contacts: deps.Contacts,
		logger:   logger.With("component", "page_handler"),
	}
}

type indexPage struct {
	SiteName string
	Profile  *domain.Profile
	Projects []*domain.Project
	Blogs    []*domain.Blog
	Sent     bool
	Error    string
}

type loginPage struct {
	SiteName string
	CodeSent bool
	Email    string
	Error    string
}

type adminPage struct {
	SiteName string
	Profile  *domain.Profile
	Projects []*domain.Project
	Blogs    []*domain.Blog
	Contacts []*domain.ContactResponse
	Error    string
}

// GET /
func (h *PageHandler) Index(c *gin.Context) {
	h.renderIndex(c, http.StatusOK, indexPage{Sent: c.Query("sent") == "1"})
}

func (h *PageHandler) renderIndex(c *gin.Context, status int, page indexPage) {
	ctx := c.Request.Context()
	page.SiteName = h.siteName

	profile, err := h.profiles.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		h.renderError(c, "load profile", err)
		return
	}
	page.Profile = profile

	projects, err := h.projects.List(ctx, false)
	if err != nil {
		h.renderError(c, "list projects", err)
		return
	}
	// featured first, newest first within each group
	slices.SortStableFunc(projects, func(a, b *domain.Project) int {
		return cmp.Compare(boolRank(b.IsFeatured), boolRank(a.IsFeatured))
	})
	page.Projects = projects

	blogs, err := h.blogs.List(ctx, true)
	if err != nil {
		h.renderError(c, "list blogs", err)
		return
	}
	page.Blogs = blogs

	c.HTML(status, "index.html", page)
}

// POST /contact
func (h *PageHandler) SubmitContact(c *gin.Context) {
	_, err := h.contacts.Create(c.Request.Context(), usecase.CreateContactInput{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Message:  c.PostForm("message"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrContactIncomplete) {
			h.renderIndex(c, http.StatusBadRequest, indexPage{Error: errContactIncomplete})
			return
		}
		h.renderError(c, "create contact response", err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/?sent=1")
}

// GET /auth/login
func (h *PageHandler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", loginPage{SiteName: h.siteName})
}

// POST /auth/login
// A "token" field redeems a code; otherwise the "email" field requests one.
func (h *PageHandler) SubmitLogin(c *gin.Context) {
	ctx := c.Request.Context()
	page := loginPage{SiteName: h.siteName, Email: strings.TrimSpace(c.PostForm("email"))}

	if token, ok := c.GetPostForm("token"); ok {
		page.CodeSent = true
		if strings.TrimSpace(token) == "" {
			page.Error = "Verification code is required"
			c.HTML(http.StatusBadRequest, "login.html", page)
			return
		}
		if err := h.auth.VerifyChallenge(ctx, token); err != nil {
			status, msg := verifyErrorStatus(err)
			if status == http.StatusInternalServerError {
				h.logger.ErrorContext(ctx, "verify challenge", "error", err)
			}
			page.Error = msg
			c.HTML(status, "login.html", page)
			return
		}
		if err := h.sessions.Create(c.Writer); err != nil {
			h.renderError(c, "create session", err)
			return
		}
		c.Redirect(http.StatusSeeOther, access.AdminPath)
		return
	}

	if page.Email == "" {
		page.Error = errEmailRequired
		c.HTML(http.StatusBadRequest, "login.html", page)
		return
	}
	if err := h.auth.IssueChallenge(ctx, page.Email); err != nil {
		status, msg := issueErrorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "issue challenge", "error", err)
		}
		page.Error = msg
		c.HTML(status, "login.html", page)
		return
	}
	page.CodeSent = true
	c.HTML(http.StatusOK, "login.html", page)
}

// POST /auth/logout
func (h *PageHandler) Logout(c *gin.Context) {
	h.sessions.Destroy(c.Writer)
	c.Redirect(http.StatusSeeOther, access.LoginPath)
}

// GET /admin
func (h *PageHandler) Admin(c *gin.Context) {
	ctx := c.Request.Context()
	page := adminPage{SiteName: h.siteName, Error: c.Query("error")}

	profile, err := h.profiles.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		h.renderError(c, "load profile", err)
		return
	}
	page.Profile = profile

	if page.Projects, err = h.projects.List(ctx, false); err != nil {
		h.renderError(c, "list projects", err)
		return
	}
	if page.Blogs, err = h.blogs.List(ctx, false); err != nil {
		h.renderError(c, "list blogs", err)
		return
	}
	if page.Contacts, err = h.contacts.List(ctx); err != nil {
		h.renderError(c, "list contact responses", err)
		return
	}

	c.HTML(http.StatusOK, "admin.html", page)
}

type projectForm struct {
	Title            string `form:"title"             binding:"required"`
	QuickDescription string `form:"quick_description"`
	FullDescription  string `form:"full_description"`
	YouTubeLink      string `form:"youtube_link"`
	ProjectURL       string `form:"project_url"`
	ImageURL         string `form:"image_url"`
	Category         string `form:"category"          binding:"required"`
	IsFeatured       string `form:"is_featured"`
}

// POST /admin/projects
func (h *PageHandler) CreateProject(c *gin.Context) {
	var form projectForm
	if err := c.ShouldBind(&form); err != nil {
		h.backToAdmin(c, "Title and category are required")
		return
	}

	_, err := h.projects.Create(c.Request.Context(), usecase.CreateProjectInput{
		Title:            form.Title,
		QuickDescription: form.QuickDescription,
		FullDescription:  &form.FullDescription,
		YouTubeLink:      &form.YouTubeLink,
		ProjectURL:       &form.ProjectURL,
		ImageURL:         &form.ImageURL,
		Category:         form.Category,
		IsFeatured:       checked(form.IsFeatured),
	})
	h.afterAction(c, "create project", err)
}

// POST /admin/projects/:id/delete
func (h *PageHandler) DeleteProject(c *gin.Context) {
	h.afterAction(c, "delete project", h.projects.Delete(c.Request.Context(), c.Param("id")))
}

type blogForm struct {
	Title       string `form:"title"       binding:"required"`
	Description string `form:"description" binding:"required"`
	Content     string `form:"content"`
	ImageURL    string `form:"image_url"`
	Category    string `form:"category"    binding:"required"`
	IsPublished string `form:"is_published"`
}

// POST /admin/blogs
func (h *PageHandler) CreateBlog(c *gin.Context) {
	var form blogForm
	if err := c.ShouldBind(&form); err != nil {
		h.backToAdmin(c, "Title, description and category are required")
		return
	}

	_, err := h.blogs.Create(c.Request.Context(), usecase.CreateBlogInput{
		Title:       form.Title,
		Description: form.Description,
		Content:     &form.Content,
		ImageURL:    &form.ImageURL,
		Category:    form.Category,
		IsPublished: checked(form.IsPublished),
	})
	h.afterAction(c, "create blog", err)
}

// POST /admin/blogs/:id/delete
func (h *PageHandler) DeleteBlog(c *gin.Context) {
	h.afterAction(c, "delete blog", h.blogs.Delete(c.Request.Context(), c.Param("id")))
}

// POST /admin/blogs/:id/publish
func (h *PageHandler) TogglePublish(c *gin.Context) {
	_, err := h.blogs.TogglePublished(c.Request.Context(), c.Param("id"))
	h.afterAction(c, "toggle blog", err)
}

// POST /admin/contact/:id/read
func (h *PageHandler) MarkContactRead(c *gin.Context) {
	read := true
	_, err := h.contacts.Update(c.Request.Context(), c.Param("id"), domain.ContactPatch{IsRead: &read})
	h.afterAction(c, "mark contact read", err)
}

// POST /admin/contact/:id/archive
func (h *PageHandler) ArchiveContact(c *gin.Context) {
	archived := true
	_, err := h.contacts.Update(c.Request.Context(), c.Param("id"), domain.ContactPatch{IsArchived: &archived})
	h.afterAction(c, "archive contact", err)
}

// POST /admin/contact/:id/delete
func (h *PageHandler) DeleteContact(c *gin.Context) {
	h.afterAction(c, "delete contact", h.contacts.Delete(c.Request.Context(), c.Param("id")))
}

type profileForm struct {
	Name      string `form:"name"`
	Bio       string `form:"bio"`
	AvatarURL string `form:"avatar_url"`
	CVURL     string `form:"cv_url"`
	Contact   string `form:"contact"`
	Email     string `form:"email" binding:"omitempty,email"`
	Twitter   string `form:"twitter"`
	GitHub    string `form:"github"`
	LinkedIn  string `form:"linkedin"`
	YouTube   string `form:"youtube"`
}

// POST /admin/profile
func (h *PageHandler) UpdateProfile(c *gin.Context) {
	var form profileForm
	if err := c.ShouldBind(&form); err != nil {
		h.backToAdmin(c, "Email is invalid")
		return
	}

	social := domain.Social{Twitter: form.Twitter, GitHub: form.GitHub, LinkedIn: form.LinkedIn, YouTube: form.YouTube}
	_, err := h.profiles.Update(c.Request.Context(), repository.ProfilePatch{
		Name:      &form.Name,
		Bio:       &form.Bio,
		AvatarURL: &form.AvatarURL,
		Social:    &social,
		CVURL:     &form.CVURL,
		Contact:   &form.Contact,
		Email:     optional(form.Email),
	})
	h.afterAction(c, "update profile", err)
}

// optional maps an empty form field to "leave unchanged".
func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func (h *PageHandler) afterAction(c *gin.Context, op string, err error) {
	if err == nil {
		c.Redirect(http.StatusSeeOther, access.AdminPath)
		return
	}
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		h.backToAdmin(c, errProjectNotFound)
	case errors.Is(err, domain.ErrBlogNotFound):
		h.backToAdmin(c, errBlogNotFound)
	case errors.Is(err, domain.ErrContactNotFound):
		h.backToAdmin(c, errContactNotFound)
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "error", err)
		h.backToAdmin(c, err.Error())
	}
}

func (h *PageHandler) backToAdmin(c *gin.Context, msg string) {
	c.Redirect(http.StatusSeeOther, access.AdminPath+"?error="+url.QueryEscape(msg))
}

func (h *PageHandler) renderError(c *gin.Context, op string, err error) {
	h.logger.ErrorContext(c.Request.Context(), op, "error", err)
	c.String(http.StatusInternalServerError, err.Error())
}

func checked(v string) bool {
	return v == "on" || v == "true"
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
