package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/notehub/notehub/utils"
)

// RecoveryMiddleware converts a handler panic into a 500 envelope so no
// request can crash the process.
func RecoveryMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, &utils.Response{
					Message: "server error",
					Error:   fmt.Sprintf("%v", r),
				})
			}
		}()
		c.Next()
	}
}
