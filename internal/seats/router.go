package seats

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
)

// SetupSeatRoutes expects rg to already carry the session middleware.
func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {
	seats := rg.Group("/seats", middleware.Authorize("/seats"))
	{
		seats.GET("/map", controller.GetSeatMap) // GET /api/v1/seats/map?tripId=&date=
	}
}
