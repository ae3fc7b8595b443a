package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"handyconnect/internal/pkg/response"
)

// RequireAccountType restricts a route group to one account type.
// Must run after Auth.
func RequireAccountType(accountType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("account_type") != accountType {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "This action requires a "+accountType+" account")
			c.Abort()
			return
		}
		c.Next()
	}
}
