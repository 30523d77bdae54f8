package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/notehub/notehub/services"
	"github.com/notehub/notehub/utils"
)

// ContextUserIDKey is where the verified caller id lives on the gin context.
const ContextUserIDKey = "user_id"

// UserID returns the verified caller id set by AuthMiddleware, or "" when the
// request never passed through it.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}

// AuthMiddleware rejects requests without a valid bearer token and attaches
// the verified user id to the context. It never touches the store.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			utils.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
