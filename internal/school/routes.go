package school

import (
	"github.com/gin-gonic/gin"

	"campus-api/internal/middlewares"
)

func RegisterRoutes(r *gin.Engine, service *SchoolService, secret string, revoked middlewares.TokenRevocationChecker) {
	controller := &SchoolController{SchoolService: service}

	group := r.Group("/api/v1/schools")
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
