package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InternalTokenMiddleware guards trusted internal endpoints (scheduler tick,
// domain events). An empty token leaves the routes open, which is only
// acceptable when they are not exposed publicly.
func InternalTokenMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got, ok := bearerToken(c)
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			zap.L().Warn("Rejected internal call", zap.String("ip", getClientIP(c)), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized internal access"})
			return
		}
		c.Next()
	}
}
