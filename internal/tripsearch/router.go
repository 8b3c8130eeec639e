package tripsearch

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
)

// SetupSearchRoutes mounts the search next to the trip CRUD. Searching only
// reads trips, so it is checked as READ even though it is a POST.
func SetupSearchRoutes(rg *gin.RouterGroup, controller *Controller) {
	search := rg.Group("/trips/search", middleware.AuthorizeAs(permission.ActionRead, "/trips"))
	{
		search.POST("", controller.Search)    // POST /api/v1/trips/search
		search.POST("/swap", controller.Swap) // POST /api/v1/trips/search/swap
	}
}
