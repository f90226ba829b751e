package attendance

import (
	"github.com/gin-gonic/gin"

	"campus-api/internal/middlewares"
)

func RegisterRoutes(r *gin.Engine, service *AttendanceService, secret string, revoked middlewares.TokenRevocationChecker) {
	controller := &AttendanceController{AttendanceService: service}

	group := r.Group("/api/v1/attendance")
	group.Use(middlewares.AuthMiddleware(secret, revoked))
	{
		group.GET("", controller.List)
		group.GET("/summary", controller.Summary)
		group.GET("/export", controller.Export)
		group.GET("/:id", controller.Get)

		staff := group.Group("")
		staff.Use(middlewares.RequireRoles("admin", "teacher"))
		{
			staff.POST("/register", controller.MarkRegister)
			staff.PUT("/:id", controller.Update)
		}

		admin := group.Group("")
		admin.Use(middlewares.RequireRoles("admin"))
		{
			admin.DELETE("/:id", controller.Delete)
		}
	}
}
