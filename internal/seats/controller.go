package seats

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/params"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetSeatMap godoc
// @Summary      Seat map of a trip on a travel date
// @Tags         seats
// @Produce      json
// @Param        tripId  query  int     true  "Trip ID"
// @Param        date    query  string  true  "Travel date (yyyy-MM-dd)"
// @Router       /seats/map [get]
func (c *Controller) GetSeatMap(ctx *gin.Context) {
	tripID, err := params.QueryID(ctx, "tripId")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	seatMap, err := c.service.GetSeatMap(ctx.Request.Context(), tripID, ctx.Query("date"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Seat map retrieved successfully", seatMap)
}

// GetSeatBookings lists ordered seats; mounted under /bookings/seatBooking.
func (c *Controller) GetSeatBookings(ctx *gin.Context) {
	tripID, err := params.QueryID(ctx, "tripId")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	seats, err := c.service.GetSeatBookings(ctx.Request.Context(), tripID, ctx.Query("date"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Ordered seats retrieved successfully", seats)
}
