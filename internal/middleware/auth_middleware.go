package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eventsphere/backend/internal/auth"
	"github.com/eventsphere/backend/internal/helpers"
	"github.com/eventsphere/backend/internal/models"
)

const principalKey = "principal"

// JWTAuth verifies the bearer token, loads the account behind it and stores
// the resulting principal on the context. Disabled accounts are rejected
// here so no protected handler ever sees one.
func JWTAuth(db *gorm.DB, tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "account no longer exists")
			c.Abort()
			return
		}

		if !user.IsActive {
			helpers.RespondWithError(c, http.StatusForbidden, "account is inactive")
			c.Abort()
			return
		}

		c.Set(principalKey, auth.Principal{ID: user.ID, Role: user.Role})
		c.Next()
	}
}

// RequireRoles allows only principals whose role is in the allowed set.
// Must be registered after JWTAuth.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		for _, role := range roles {
			if p.Role == role {
				c.Next()
				return
			}
		}

		helpers.RespondWithError(c, http.StatusForbidden, "insufficient permissions")
		c.Abort()
	}
}

// GetPrincipal returns the principal stored by JWTAuth.
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}
