package auth

import (
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes mounts the public auth endpoints on public and the
// session-bound ones on protected.
func SetupAuthRoutes(public, protected *gin.RouterGroup, controller *Controller) {
	auth := public.Group("/auth")
	{
		auth.POST("/login", controller.Login)                           // POST /api/v1/auth/login
		auth.POST("/forgot", controller.Forgot)                         // POST /api/v1/auth/forgot
		auth.GET("/checkExistEmail/:email", controller.CheckExistEmail) // GET /api/v1/auth/checkExistEmail/:email
	}

	session := protected.Group("/auth")
	{
		session.POST("/logout", controller.Logout)                // POST /api/v1/auth/logout
		session.PUT("/changePassword", controller.ChangePassword) // PUT /api/v1/auth/changePassword
		session.GET("/me", controller.GetMe)                      // GET /api/v1/auth/me
	}
}
