package middleware

import (
	"go-cookmate-backend/internal/delivery/http/response"
	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/pkg/auth"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Identify resolves the bearer token to a principal email and attaches it
// to the request context. Verification failures leave the request
// anonymous rather than rejecting it; endpoints that need a principal use
// RequireAuth on top.
func Identify(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if email, err := tokens.Verify(tokenString); err == nil {
				c.Set(string(domain.KeyUserEmail), email)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects requests that carry no resolved principal.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(domain.KeyUserEmail)) == "" {
			response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Principal returns the authenticated email for the request, or "" when
// the caller is anonymous.
func Principal(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserEmail))
}
