package student

import (
	"github.com/gin-gonic/gin"

	"campus-api/internal/audit"
	"campus-api/internal/middlewares"
)

func RegisterRoutes(r *gin.Engine, service *StudentService, logService *audit.Service, secret string, revoked middlewares.TokenRevocationChecker) {
	controller := &StudentController{StudentService: service, LS: logService}

	group := r.Group("/api/v1/students")
	group.Use(middlewares.AuthMiddleware(secret, revoked))
	{
		group.GET("", controller.List)
		group.GET("/:id", controller.Get)

		staff := group.Group("")
		staff.Use(middlewares.RequireRoles("admin", "teacher"))
		{
			staff.POST("", controller.Create)
			staff.PUT("/:id", controller.Update)
		}

		admin := group.Group("")
		admin.Use(middlewares.RequireRoles("admin"))
		{
			admin.DELETE("/:id", controller.Delete)
		}
	}
}
