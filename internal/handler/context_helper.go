package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/task-scheduler-api/internal/middleware"
)

func actorID(c *gin.Context) string {
	if claims := middleware.ClaimsFromContext(c); claims != nil {
		return claims.Subject
	}
	return ""
}
