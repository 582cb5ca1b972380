package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bcsi-site/internal/models"
	appErrors "github.com/noah-isme/bcsi-site/pkg/errors"
	"github.com/noah-isme/bcsi-site/pkg/response"
)

// RequireRoles lets the request through only when the authenticated role is listed.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "your role cannot manage site content"))
			return
		}
		c.Next()
	}
}

// ContentManagers are the roles allowed on the admin surface.
var ContentManagers = []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin, models.RoleEditor}
