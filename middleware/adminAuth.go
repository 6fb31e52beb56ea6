package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"fixfresh/config"
	"fixfresh/models"

	"github.com/gin-gonic/gin"
)

// AdminKeyMiddleware guards the back-office validation endpoints with a
// static API key. Requests passing the check act as the admin reviewer.
func AdminKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.AppConfig.AdminAPIKey
		if key == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access is not configured"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set(actorKey, models.Actor{ID: "back-office", Role: models.RoleAdmin})
		c.Next()
	}
}
