package guardian

import (
	"github.com/gin-gonic/gin"

	"campus-api/internal/middlewares"
)

func RegisterRoutes(r *gin.Engine, service *GuardianService, secret string, revoked middlewares.TokenRevocationChecker) {
	controller := &GuardianController{GuardianService: service}

	group := r.Group("/api/v1/parents")
	group.Use(middlewares.AuthMiddleware(secret, revoked))
	{
		group.GET("", controller.List)
		group.GET("/:id", controller.Get)

		staff := group.Group("")
		staff.Use(middlewares.RequireRoles("admin", "teacher"))
		{
			staff.POST("", controller.Create)
			staff.PUT("/:id", controller.Update)
			staff.POST("/:id/students", controller.LinkStudent)
			staff.DELETE("/:id/students/:studentId", controller.UnlinkStudent)
		}

		admin := group.Group("")
		admin.Use(middlewares.RequireRoles("admin"))
		{
			admin.DELETE("/:id", controller.Delete)
		}
	}
}
