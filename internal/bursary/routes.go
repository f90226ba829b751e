package bursary

import (
	"github.com/gin-gonic/gin"

	"campus-api/internal/middlewares"
)

func RegisterRoutes(r *gin.Engine, service *BursaryService, secret string, revoked middlewares.TokenRevocationChecker) {
	controller := &BursaryController{BursaryService: service}

	group := r.Group("/api/v1/bursaries")
	group.Use(middlewares.AuthMiddleware(secret, revoked))
	{
		group.GET("", controller.List)
		group.GET("/:id", controller.Get)

		admin := group.Group("")
		admin.Use(middlewares.RequireRoles("admin"))
		{
			admin.POST("", controller.Create)
			admin.PUT("/:id", controller.Update)
			admin.POST("/:id/document", controller.AttachDocument)
			admin.DELETE("/:id", controller.Delete)
		}
	}
}
