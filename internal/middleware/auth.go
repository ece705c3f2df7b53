package middleware

import (
	"errors"
	"net/http"
	"strings"

	"campusdir/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware.
const (
	ContextToken  = "token"
	ContextClaims = "claims"
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware creates a Gin middleware for JWT authentication. Validation
// runs through the auth service so the token blacklist is consulted before
// the signature.
func AuthMiddleware(auth service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			c.Abort()
			return
		}

		tokenString := parts[1]

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenInvalidated):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been invalidated"})
			case errors.Is(err, service.ErrNoToken), errors.Is(err, service.ErrInvalidToken):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			default:
				logger.Error("Token validation failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate token"})
			}
			c.Abort()
			return
		}

		// Set user claims in context
		c.Set(ContextToken, tokenString)
		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}
