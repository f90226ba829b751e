package audit

import (
	"github.com/gin-gonic/gin"

	"campus-api/internal/middlewares"
)

func RegisterRoutes(r *gin.Engine, service *Service, secret string, revoked middlewares.TokenRevocationChecker) {
	controller := &Controller{Service: service}

	group := r.Group("/api/v1/audit-logs")
	group.Use(middlewares.AuthMiddleware(secret, revoked))
	group.Use(middlewares.RequireRoles("admin"))
	{
		group.GET("", controller.List)
	}
}
