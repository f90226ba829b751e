package assessment

import (
	"github.com/gin-gonic/gin"

	"campus-api/internal/middlewares"
)

func RegisterRoutes(r *gin.Engine, service *AssessmentService, secret string, revoked middlewares.TokenRevocationChecker) {
	controller := &AssessmentController{AssessmentService: service}

	group := r.Group("/api/v1/assessments")
	group.Use(middlewares.AuthMiddleware(secret, revoked))
	{
		group.GET("", controller.List)
		group.GET("/:id", controller.Get)

		staff := group.Group("")
		staff.Use(middlewares.RequireRoles("admin", "teacher"))
		{
			staff.POST("", controller.Create)
			staff.PUT("/:id", controller.Update)
			staff.DELETE("/:id", controller.Delete)
		}
	}
}
