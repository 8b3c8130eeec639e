package bookings

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
)

// SetupBookingRoutes mounts the ticket screen. seatBookings serves the
// ordered-seat lookup used by the booking form.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, seatBookings gin.HandlerFunc) {
	bookings := rg.Group("/bookings", middleware.Authorize("/bookings"))
	{
		bookings.GET("/all", controller.GetAll)        // GET /api/v1/bookings/all?tripId=&status=&search=
		bookings.GET("/paging", controller.GetPage)    // GET /api/v1/bookings/paging?page=&limit=
		bookings.GET("/seatBooking", seatBookings)     // GET /api/v1/bookings/seatBooking?tripId=&date=
		bookings.GET("/:id", controller.GetByID)       // GET /api/v1/bookings/:id
		bookings.GET("/:id/ticket", controller.Ticket) // GET /api/v1/bookings/:id/ticket
		bookings.POST("", controller.Create)           // POST /api/v1/bookings
		bookings.PUT("", controller.Update)            // PUT /api/v1/bookings
		bookings.DELETE("/:id", controller.Cancel)     // DELETE /api/v1/bookings/:id
	}
}
