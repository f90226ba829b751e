package staff

import (
	"github.com/gin-gonic/gin"

	"campus-api/internal/middlewares"
)

func RegisterRoutes(r *gin.Engine, service *StaffService, secret string, revoked middlewares.TokenRevocationChecker) {
	controller := &StaffController{StaffService: service}

	group := r.Group("/api/v1/teachers")
	group.Use(middlewares.AuthMiddleware(secret, revoked))
	{
		group.GET("", controller.List)
		group.GET("/:id", controller.Get)

		admin := group.Group("")
		admin.Use(middlewares.RequireRoles("admin"))
		{
			admin.POST("", controller.Create)
			admin.PUT("/:id", controller.Update)
			admin.DELETE("/:id", controller.Delete)
		}
	}
}
