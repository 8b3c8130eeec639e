package coaches

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
)

func SetupCoachRoutes(rg *gin.RouterGroup, controller *Controller) {
	coaches := rg.Group("/coaches", middleware.Authorize("/coaches"))
	{
		coaches.GET("/all", controller.GetAll)                                            // GET /api/v1/coaches/all
		coaches.GET("/paging", controller.GetPage)                                        // GET /api/v1/coaches/paging?page=&limit=
		coaches.GET("/checkDuplicate/:mode/:id/:field/:value", controller.CheckDuplicate) // GET /api/v1/coaches/checkDuplicate/...
		coaches.GET("/:id", controller.GetByID)                                           // GET /api/v1/coaches/:id
		coaches.POST("", controller.Create)                                               // POST /api/v1/coaches
		coaches.PUT("", controller.Update)                                                // PUT /api/v1/coaches
		coaches.DELETE("/:id", controller.Delete)                                         // DELETE /api/v1/coaches/:id
	}
}
