package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "handyconnect/internal/pkg/jwt"
	"handyconnect/internal/pkg/response"
)

// Auth validates the bearer token and stores user_id and account_type on the
// gin context. Validation failures never reveal which check failed beyond the
// generic UNAUTHORIZED code.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("account_type", claims.AccountType)

		c.Next()
	}
}

// UserID returns the authenticated user id set by Auth, or "" when absent.
func UserID(c *gin.Context) string {
	return c.GetString("user_id")
}
