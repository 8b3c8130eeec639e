package users

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
)

func SetupUserRoutes(rg *gin.RouterGroup, controller *Controller) {
	users := rg.Group("/users", middleware.Authorize("/users"))
	{
		users.GET("/all", controller.GetAll)                                            // GET /api/v1/users/all
		users.GET("/paging", controller.GetPage)                                        // GET /api/v1/users/paging?page=&limit=
		users.GET("/checkDuplicate/:mode/:id/:field/:value", controller.CheckDuplicate) // GET /api/v1/users/checkDuplicate/...
		users.GET("/permission/:username", controller.GetPermission)                    // GET /api/v1/users/permission/:username
		users.GET("/:id", controller.GetByID)                                           // GET /api/v1/users/:id
		users.POST("", controller.Create)                                               // POST /api/v1/users
		users.PUT("", controller.Update)                                                // PUT /api/v1/users
		users.DELETE("/:id", controller.Delete)                                         // DELETE /api/v1/users/:id
	}
}
