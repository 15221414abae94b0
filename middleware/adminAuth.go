package middleware

import (
	"net/http"

	userRepo "bcal/database/repository/user"
	"bcal/models"

	"github.com/gin-gonic/gin"
)

// AdminOnly runs after JWTAuthMiddleware and requires the session user to
// hold the admin role within their organization.
func AdminOnly(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(CtxUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		u, err := users.GetByID(userID)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			return
		}
		if u.Role != models.RoleAdmin && !u.IsSystemAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}

// SystemAdminOnly requires the cross-tenant operator flag.
func SystemAdminOnly(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(CtxUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		u, err := users.GetByID(userID)
		if err != nil || u == nil || !u.IsSystemAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "System admin access required"})
			return
		}
		c.Next()
	}
}
