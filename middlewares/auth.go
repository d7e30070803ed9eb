package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tastybites/tastybites-api/config"
	"github.com/tastybites/tastybites-api/models"
	"github.com/tastybites/tastybites-api/utils"
)

const (
	currentUserKey = "currentUser"
	claimsKey      = "claims"
)

type AuthMiddleware struct {
	DB  *gorm.DB
	JWT config.JWTConfig
}

func NewAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{DB: db, JWT: jwtCfg}
}

// RequireAuth validates the bearer token and loads the user row into the
// request context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required (Bearer <token>)"})
			return
		}

		claims, err := utils.ParseToken(am.JWT, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		var user models.User
		if err := am.DB.First(&user, claims.UserID).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Could not validate credentials"})
			return
		}

		if !user.IsActive {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Inactive user account"})
			return
		}

		ctx.Set(currentUserKey, user)
		ctx.Set(claimsKey, claims)

		ctx.Next()
	}
}

// CurrentUser extracts the authenticated user placed by RequireAuth.
func CurrentUser(ctx *gin.Context) (models.User, bool) {
	val, exists := ctx.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

// TokenClaims exposes the raw claims, including the role snapshot from issue
// time. Display only; never use these for privileged checks.
func TokenClaims(ctx *gin.Context) (*utils.Claims, bool) {
	val, exists := ctx.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*utils.Claims)
	return claims, ok
}
