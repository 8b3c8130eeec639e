package bookings

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/params"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// listQuery reads the optional tripId, status and search filters.
func listQuery(ctx *gin.Context) (ListQuery, error) {
	var q ListQuery
	if raw := ctx.Query("tripId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return q, apperror.Invalid("tripId", "must be a positive integer")
		}
		q.TripID = id
	}
	if raw := ctx.Query("status"); raw != "" {
		q.Status = Status(strings.ToUpper(raw))
		if !q.Status.IsValid() {
			return q, apperror.Invalid("status", "must be CONFIRMED or CANCELLED")
		}
	}
	q.Search = strings.TrimSpace(ctx.Query("search"))
	return q, nil
}

// GetAll godoc
// @Summary      List tickets
// @Tags         bookings
// @Produce      json
// @Param        tripId  query  int     false  "Trip ID"
// @Param        status  query  string  false  "CONFIRMED or CANCELLED"
// @Param        search  query  string  false  "Booking ref, customer name or phone"
// @Router       /bookings/all [get]
func (c *Controller) GetAll(ctx *gin.Context) {
	q, err := listQuery(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	list, err := c.service.GetAll(ctx.Request.Context(), q)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Bookings retrieved successfully", list)
}

// GetPage godoc
// @Summary      List tickets page by page
// @Tags         bookings
// @Produce      json
// @Param        page    query  int     false  "Zero-based page"
// @Param        limit   query  int     false  "Page size"
// @Param        tripId  query  int     false  "Trip ID"
// @Param        status  query  string  false  "CONFIRMED or CANCELLED"
// @Param        search  query  string  false  "Booking ref, customer name or phone"
// @Router       /bookings/paging [get]
func (c *Controller) GetPage(ctx *gin.Context) {
	q, err := listQuery(ctx)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	page, limit := params.Paging(ctx)

	result, err := c.service.GetPage(ctx.Request.Context(), q, page, limit)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Bookings retrieved successfully", result)
}

// GetByID godoc
// @Summary      Get a ticket
// @Tags         bookings
// @Produce      json
// @Param        id  path  int  true  "Booking ID"
// @Router       /bookings/{id} [get]
func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := params.ID(ctx, "id")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	booking, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Booking retrieved successfully", booking)
}

// Create godoc
// @Summary      Sell a ticket
// @Description  The total is recomputed from the trip price and discount.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request  body  BookingRequest  true  "Booking"
// @Router       /bookings [post]
func (c *Controller) Create(ctx *gin.Context) {
	var req BookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	if s, ok := middleware.CurrentSession(ctx); ok {
		req.UserID = &s.UserID
	}

	booking, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// Update godoc
// @Summary      Edit a ticket (id in body)
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request  body  BookingRequest  true  "Booking"
// @Router       /bookings [put]
func (c *Controller) Update(ctx *gin.Context) {
	var req BookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}
	if req.ID <= 0 {
		response.RespondError(ctx, apperror.Invalid("id", "must be a positive integer"))
		return
	}

	booking, err := c.service.Update(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Booking updated successfully", booking)
}

// Cancel godoc
// @Summary      Cancel a ticket and free its seats
// @Tags         bookings
// @Param        id  path  int  true  "Booking ID"
// @Router       /bookings/{id} [delete]
func (c *Controller) Cancel(ctx *gin.Context) {
	id, err := params.ID(ctx, "id")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	if err := c.service.Cancel(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Booking cancelled successfully", nil)
}

// Ticket godoc
// @Summary      Download the printable ticket
// @Tags         bookings
// @Produce      application/pdf
// @Param        id  path  int  true  "Booking ID"
// @Router       /bookings/{id}/ticket [get]
func (c *Controller) Ticket(ctx *gin.Context) {
	id, err := params.ID(ctx, "id")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	pdf, booking, err := c.service.Ticket(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="ticket-%s.pdf"`, booking.BookingRef))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}
