package middleware

import (
	"context"
	"net/http"
	"strings"

	userRepo "bcal/database/repository/user"
	"bcal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID = "userID"
	CtxOrgID  = "orgID"
)

// JWTAuthMiddleware validates the bearer token and resolves the session. The
// token hash is checked against the auth cache first; a cache miss falls back
// to loading the user record, so sessions survive a cache flush.
func JWTAuthMiddleware(users userRepo.UserRepository, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, orgID, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Cache hit means the session is live. Misses and cache outages both
		// fall through to the database check against the stored token hash.
		if authCache != nil {
			key := utils.AuthCachePrefix + utils.HashToken(tokenString)
			cached, err := authCache.Get(context.Background(), key).Result()
			if err == nil && cached == userID {
				c.Set(CtxUserID, userID)
				c.Set(CtxOrgID, orgID)
				c.Next()
				return
			}
		}

		u, err := users.GetByID(userID)
		if err != nil || u == nil || !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown or inactive user"})
			return
		}
		// Sign-out clears the stored hash, so a revoked token fails here even
		// though it still parses and the user is active.
		if u.TokenHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session revoked or expired"})
			return
		}

		c.Set(CtxUserID, u.ID)
		c.Set(CtxOrgID, u.OrganizationID)
		c.Next()
	}
}
