package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matloa/secretnotes/internal/session"
)

// Context keys set by RequireLogin for downstream handlers
const (
	ContextUserIDKey   = "auth.user_id"
	ContextUsernameKey = "auth.username"
)

// RequireLogin guards protected endpoints. Requests without an
// authenticated session are sent back to the login page instead of
// erroring.
func RequireLogin(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, username, ok := sessions.Identity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "unauthorized",
				"redirect": "/login",
			})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextUsernameKey, username)
		c.Next()
	}
}

// UserID returns the authenticated user ID set by RequireLogin
func UserID(c *gin.Context) int64 {
	id, _ := c.Get(ContextUserIDKey)
	userID, _ := id.(int64)
	return userID
}
