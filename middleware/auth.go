package middleware

import (
	"net/http"
	"strings"

	"lunchbox/models"
	"lunchbox/utils"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// JWTAuthMiddleware validates the bearer token and stores the caller identity
// (id, email, role) in the gin context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		caller, err := utils.ParseCaller(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(callerKey, caller)
		c.Set("userID", caller.UserID)
		c.Next()
	}
}

// CallerFromContext returns the identity set by JWTAuthMiddleware. The zero
// Caller is returned for unauthenticated requests.
func CallerFromContext(c *gin.Context) models.Caller {
	v, ok := c.Get(callerKey)
	if !ok {
		return models.Caller{}
	}
	caller, _ := v.(models.Caller)
	return caller
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}
