package auth

import (
	"github.com/gin-gonic/gin"

	"campus-api/internal/middlewares"
)

func RegisterRoutes(r *gin.Engine, controller *AuthController) {
	// a typed nil must not become a non-nil interface
	var checker middlewares.TokenRevocationChecker
	if controller.Revoker != nil {
		checker = controller.Revoker
	}

	public := r.Group("/api/v1/auth")
	{
		public.POST("/signup", controller.SignUp)
		public.POST("/login", controller.Login)
		public.POST("/refresh", controller.Refresh)
		public.POST("/forgot-password", controller.ForgotPassword)
		public.POST("/reset-password", controller.ResetPassword)
	}

	protected := r.Group("/api/v1/auth")
	protected.Use(middlewares.AuthMiddleware(controller.Secret, checker))
	{
		protected.GET("/me", controller.Me)
		protected.POST("/logout", controller.Logout)
	}

	users := r.Group("/api/v1/users")
	users.Use(middlewares.AuthMiddleware(controller.Secret, checker))
	users.Use(middlewares.RequireRoles(RoleAdmin))
	{
		users.GET("", controller.ListUsers)
		users.PUT("/:id", controller.UpdateUser)
		users.DELETE("/:id", controller.DeleteUser)
	}
}
