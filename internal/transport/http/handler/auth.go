package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handlers need.
type authUsecaser interface {
	IssueChallenge(ctx context.Context, email string) error
	VerifyChallenge(ctx context.Context, code string) error
}

type sessionManager interface {
	Create(w http.ResponseWriter) error
	Destroy(w http.ResponseWriter)
}

type AuthHandler struct {
	authUsecase authUsecaser
	sessions    sessionManager
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, sessions sessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		sessions:    sessions,
		logger:      logger.With("component", "auth_handler"),
	}
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	OTP string `json:"otp"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errEmailRequired})
		return
	}

	if err := h.authUsecase.IssueChallenge(c.Request.Context(), req.Email); err != nil {
		status, msg := issueErrorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(c.Request.Context(), "issue challenge", "error", err)
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, authResponse{Success: true, Message: "OTP sent to your email address"})
}

// POST /api/auth/verify-otp
// Sets the session cookie on success; the caller then navigates to /admin.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.OTP) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errOTPRequired})
		return
	}

	if err := h.authUsecase.VerifyChallenge(c.Request.Context(), req.OTP); err != nil {
		status, msg := verifyErrorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(c.Request.Context(), "verify challenge", "error", err)
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if err := h.sessions.Create(c.Writer); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "create session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, authResponse{Success: true, Message: "OTP verified successfully"})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Destroy(c.Writer)
	c.JSON(http.StatusOK, authResponse{Success: true})
}

func issueErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmailMismatch):
		return http.StatusBadRequest, errEmailMismatch
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, errProfileNotFound
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func verifyErrorStatus(err error) (int, string) {
	if errors.Is(err, domain.ErrOTPInvalid) {
		return http.StatusBadRequest, errOTPInvalid
	}
	return http.StatusInternalServerError, err.Error()
}
