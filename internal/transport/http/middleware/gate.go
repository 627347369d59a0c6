package middleware

import (
	"net/http"

	"github.com/ErlanBelekov/portfolio/internal/access"
	"github.com/ErlanBelekov/portfolio/internal/metrics"
	"github.com/ErlanBelekov/portfolio/internal/reqctx"
	"github.com/gin-gonic/gin"
)

// SessionValidKey is the gin context key holding the request's session validity.
const SessionValidKey = "sessionValid"

type sessionChecker interface {
	Credential(r *http.Request) string
	Valid(credential string) bool
}

// Gate enforces the access policy before any handler runs.
func Gate(sessions sessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if access.Excluded(p) {
			c.Next()
			return
		}

		valid := sessions.Valid(sessions.Credential(c.Request))
		c.Set(SessionValidKey, valid)
		c.Request = c.Request.WithContext(reqctx.WithOperator(c.Request.Context(), valid))

		class := access.Classify(c.Request.Method, p)
		decision := access.Decide(c.Request.Method, p, valid)
		metrics.GateDecisionsTotal.WithLabelValues(string(class), string(decision)).Inc()

		switch decision {
		case access.RedirectLogin:
			c.Redirect(http.StatusFound, access.LoginPath)
			c.Abort()
		case access.RedirectAdmin:
			c.Redirect(http.StatusFound, access.AdminPath)
			c.Abort()
		default:
			c.Next()
		}
	}
}

// SessionValid reads the flag stored by Gate. False when Gate did not run.
func SessionValid(c *gin.Context) bool {
	return c.GetBool(SessionValidKey)
}
