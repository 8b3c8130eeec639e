package wizard

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
)

// SetupWizardRoutes mounts the booking wizard. Every wizard call is part of
// creating a ticket, so the whole group is checked as CREATE; editing an
// existing booking needs UPDATE instead.
func SetupWizardRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.POST("/wizard/edit/:bookingId", middleware.AuthorizeAs(permission.ActionUpdate, "/wizard"), controller.Edit)

	wz := rg.Group("/wizard", middleware.AuthorizeAs(permission.ActionCreate, "/wizard"))
	{
		wz.POST("", controller.Start)                      // POST /api/v1/wizard
		wz.GET("/:id", controller.Get)                     // GET /api/v1/wizard/:id
		wz.DELETE("/:id", controller.Discard)              // DELETE /api/v1/wizard/:id
		wz.POST("/:id/search", controller.Search)          // POST /api/v1/wizard/:id/search
		wz.POST("/:id/swap", controller.Swap)              // POST /api/v1/wizard/:id/swap
		wz.POST("/:id/trip", controller.SelectTrip)        // POST /api/v1/wizard/:id/trip
		wz.GET("/:id/seats", controller.SeatMap)           // GET /api/v1/wizard/:id/seats
		wz.POST("/:id/seats", controller.ChooseSeat)       // POST /api/v1/wizard/:id/seats
		wz.PATCH("/:id/payment", controller.UpdatePayment) // PATCH /api/v1/wizard/:id/payment
		wz.POST("/:id/next", controller.Next)              // POST /api/v1/wizard/:id/next
		wz.POST("/:id/back", controller.Back)              // POST /api/v1/wizard/:id/back
		wz.POST("/:id/submit", controller.Submit)          // POST /api/v1/wizard/:id/submit
	}
}
