package middleware

import (
	"net/http"

	"campusdir/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects the request unless the authenticated role is one of
// the allowed roles. Must run after AuthMiddleware.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.MustGet(ContextRole).(models.Role)
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to perform this action"})
		c.Abort()
	}
}
