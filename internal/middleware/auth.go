package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"zapshift/internal/auth"
)

// AuthEmailKey is the context key under which the verified principal email is
// stored for downstream handlers.
const AuthEmailKey = "authEmail"

// RequireAuth returns middleware that verifies the bearer token and stores the
// verified email in the request context. Requests without a valid token are
// rejected with 401.
func RequireAuth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		email, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		c.Set(AuthEmailKey, email)
		c.Next()
	}
}

// VerifiedEmail returns the email stored by RequireAuth, or "" when the
// request did not pass through it.
func VerifiedEmail(c *gin.Context) string {
	email, _ := c.Get(AuthEmailKey)
	s, _ := email.(string)
	return s
}
