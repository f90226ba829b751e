package academics

import (
	"github.com/gin-gonic/gin"

	"campus-api/internal/middlewares"
)

func RegisterRoutes(r *gin.Engine, subjects *SubjectService, rooms *RoomService, classes *ClassService, secret string, revoked middlewares.TokenRevocationChecker) {
	auth := middlewares.AuthMiddleware(secret, revoked)
	adminOnly := middlewares.RequireRoles("admin")

	subjectController := &SubjectController{SubjectService: subjects}
	sg := r.Group("/api/v1/subjects")
	sg.Use(auth)
	{
		sg.GET("", subjectController.List)
		sg.GET("/:id", subjectController.Get)

		admin := sg.Group("")
		admin.Use(adminOnly)
		{
			admin.POST("", subjectController.Create)
			admin.PUT("/:id", subjectController.Update)
			admin.DELETE("/:id", subjectController.Delete)
		}
	}

	roomController := &RoomController{RoomService: rooms}
	rg := r.Group("/api/v1/rooms")
	rg.Use(auth)
	{
		rg.GET("", roomController.List)
		rg.GET("/:id", roomController.Get)

		admin := rg.Group("")
		admin.Use(adminOnly)
		{
			admin.POST("", roomController.Create)
			admin.PUT("/:id", roomController.Update)
			admin.DELETE("/:id", roomController.Delete)
		}
	}

	classController := &ClassController{ClassService: classes}
	cg := r.Group("/api/v1/classes")
	cg.Use(auth)
	{
		cg.GET("", classController.List)
		cg.GET("/:id", classController.Get)

		admin := cg.Group("")
		admin.Use(adminOnly)
		{
			admin.POST("", classController.Create)
			admin.PUT("/:id", classController.Update)
			admin.DELETE("/:id", classController.Delete)
		}
	}
}
