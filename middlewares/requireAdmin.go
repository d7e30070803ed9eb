package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastybites/tastybites-api/models"
)

// RequireAdmin re-queries the roles table for the authenticated user. The
// token's embedded roles are deliberately ignored here: a revoked admin must
// be denied even while holding an unexpired token that still claims the role.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, exists := CurrentUser(ctx)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		var role models.Role
		err := am.DB.Where("user_id = ? AND role = ?", user.ID, models.RoleAdmin).First(&role).Error
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}

		ctx.Next()
	}
}
