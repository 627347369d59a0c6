package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	errInternalServer    = "Internal server error"
	errInvalidBody       = "Invalid request body"
	errEmailRequired     = "Email is required"
	errEmailMismatch     = "Email does not match registered profile"
	errProfileNotFound   = "Profile not found"
	errOTPRequired       = "OTP is required"
	errOTPInvalid        = "Invalid or expired OTP"
	errProjectNotFound   = "Project not found"
	errBlogNotFound      = "Blog not found"
	errContactNotFound   = "Contact response not found"
	errContactIncomplete = "All fields are required"
)

// bindJSON decodes the body into req. Malformed JSON gets the generic 400;
// failed binding rules report the offending fields.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErrorsMessage(verrs)})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
	return false
}

func fieldErrorsMessage(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			msgs = append(msgs, fe.Field()+" is required")
			continue
		}
		msgs = append(msgs, fe.Field()+" is invalid")
	}
	return strings.Join(msgs, "; ")
}

// storeFailure surfaces a record store error as 500 with its message.
func storeFailure(c *gin.Context, logger *slog.Logger, op string, err error) {
	logger.ErrorContext(c.Request.Context(), op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
