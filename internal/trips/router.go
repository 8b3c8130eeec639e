package trips

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
)

func SetupTripRoutes(rg *gin.RouterGroup, controller *Controller) {
	trips := rg.Group("/trips", middleware.Authorize("/trips"))
	{
		trips.GET("/all", controller.GetAll)     // GET /api/v1/trips/all
		trips.GET("/paging", controller.GetPage) // GET /api/v1/trips/paging?page=&limit=
		trips.GET("/:id", controller.GetByID)    // GET /api/v1/trips/:id
		trips.POST("", controller.Create)        // POST /api/v1/trips
		trips.PUT("", controller.Update)         // PUT /api/v1/trips
		trips.DELETE("/:id", controller.Delete)  // DELETE /api/v1/trips/:id
	}
}
