package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/task-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/task-scheduler-api/pkg/errors"
	"github.com/noah-isme/task-scheduler-api/pkg/response"
)

// RequireRoles lets a request through only when JWT claims carry one of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Protect chains JWT and RequireRoles when enabled; otherwise it is a pass-through.
func Protect(enabled bool, validator TokenValidator, roles ...models.UserRole) gin.HandlersChain {
	if !enabled || validator == nil {
		return nil
	}
	return gin.HandlersChain{JWT(validator), RequireRoles(roles...)}
}
