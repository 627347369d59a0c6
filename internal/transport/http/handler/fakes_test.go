package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/repository"
	"github.com/ErlanBelekov/portfolio/internal/session"
	"github.com/ErlanBelekov/portfolio/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// withSession marks the request as carrying a valid admin session, standing in for the gate.
func withSession(valid bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("sessionValid", valid)
		c.Next()
	}
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	issueChallenge  func(ctx context.Context, email string) error
	verifyChallenge func(ctx context.Context, code string) error
}

func (f *fakeAuthUsecase) IssueChallenge(ctx context.Context, email string) error {
	return f.issueChallenge(ctx, email)
}

func (f *fakeAuthUsecase) VerifyChallenge(ctx context.Context, code string) error {
	return f.verifyChallenge(ctx, code)
}

type fakeSessions struct {
	*session.Manager
	createErr error
}

func (f *fakeSessions) Create(w http.ResponseWriter) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.Manager.Create(w)
}

type fakeProjectUsecase struct {
	create  func(ctx context.Context, input usecase.CreateProjectInput) (*domain.Project, error)
	getByID func(ctx context.Context, id string) (*domain.Project, error)
	list    func(ctx context.Context, featuredOnly bool) ([]*domain.Project, error)
	update  func(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	delete  func(ctx context.Context, id string) error
}

func (f *fakeProjectUsecase) Create(ctx context.Context, input usecase.CreateProjectInput) (*domain.Project, error) {
	return f.create(ctx, input)
}

func (f *fakeProjectUsecase) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return f.getByID(ctx, id)
}

func (f *fakeProjectUsecase) List(ctx context.Context, featuredOnly bool) ([]*domain.Project, error) {
	return f.list(ctx, featuredOnly)
}

func (f *fakeProjectUsecase) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	return f.update(ctx, id, patch)
}

func (f *fakeProjectUsecase) Delete(ctx context.Context, id string) error {
	return f.delete(ctx, id)
}

type fakeBlogUsecase struct {
	create          func(ctx context.Context, input usecase.CreateBlogInput) (*domain.Blog, error)
	getByID         func(ctx context.Context, id string, includeDrafts bool) (*domain.Blog, error)
	list            func(ctx context.Context, publishedOnly bool) ([]*domain.Blog, error)
	update          func(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error)
	togglePublished func(ctx context.Context, id string) (*domain.Blog, error)
	delete          func(ctx context.Context, id string) error
}

func (f *fakeBlogUsecase) Create(ctx context.Context, input usecase.CreateBlogInput) (*domain.Blog, error) {
	return f.create(ctx, input)
}

func (f *fakeBlogUsecase) GetByID(ctx context.Context, id string, includeDrafts bool) (*domain.Blog, error) {
	return f.getByID(ctx, id, includeDrafts)
}

func (f *fakeBlogUsecase) List(ctx context.Context, publishedOnly bool) ([]*domain.Blog, error) {
	return f.list(ctx, publishedOnly)
}

func (f *fakeBlogUsecase) Update(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error) {
	return f.update(ctx, id, patch)
}

func (f *fakeBlogUsecase) TogglePublished(ctx context.Context, id string) (*domain.Blog, error) {
	return f.togglePublished(ctx, id)
}

func (f *fakeBlogUsecase) Delete(ctx context.Context, id string) error {
	return f.delete(ctx, id)
}

type fakeProfileUsecase struct {
	get    func(ctx context.Context) (*domain.Profile, error)
	update func(ctx context.Context, patch repository.ProfilePatch) (*domain.Profile, error)
}

func (f *fakeProfileUsecase) Get(ctx context.Context) (*domain.Profile, error) {
	return f.get(ctx)
}

func (f *fakeProfileUsecase) Update(ctx context.Context, patch repository.ProfilePatch) (*domain.Profile, error) {
	return f.update(ctx, patch)
}

type fakeContactUsecase struct {
	create func(ctx context.Context, input usecase.CreateContactInput) (*domain.ContactResponse, error)
	list   func(ctx context.Context) ([]*domain.ContactResponse, error)
	update func(ctx context.Context, id string, patch domain.ContactPatch) (*domain.ContactResponse, error)
	delete func(ctx context.Context, id string) error
}

func (f *fakeContactUsecase) Create(ctx context.Context, input usecase.CreateContactInput) (*domain.ContactResponse, error) {
	return f.create(ctx, input)
}

func (f *fakeContactUsecase) List(ctx context.Context) ([]*domain.ContactResponse, error) {
	return f.list(ctx)
}

func (f *fakeContactUsecase) Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.ContactResponse, error) {
	return f.update(ctx, id, patch)
}

func (f *fakeContactUsecase) Delete(ctx context.Context, id string) error {
	return f.delete(ctx, id)
}
