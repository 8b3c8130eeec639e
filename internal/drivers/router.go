package drivers

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
)

func SetupDriverRoutes(rg *gin.RouterGroup, controller *Controller) {
	drivers := rg.Group("/drivers", middleware.Authorize("/drivers"))
	{
		drivers.GET("/all", controller.GetAll)                                            // GET /api/v1/drivers/all
		drivers.GET("/paging", controller.GetPage)                                        // GET /api/v1/drivers/paging?page=&limit=
		drivers.GET("/checkDuplicate/:mode/:id/:field/:value", controller.CheckDuplicate) // GET /api/v1/drivers/checkDuplicate/...
		drivers.GET("/:id", controller.GetByID)                                           // GET /api/v1/drivers/:id
		drivers.POST("", controller.Create)                                               // POST /api/v1/drivers
		drivers.PUT("", controller.Update)                                                // PUT /api/v1/drivers
		drivers.DELETE("/:id", controller.Delete)                                         // DELETE /api/v1/drivers/:id
	}
}
