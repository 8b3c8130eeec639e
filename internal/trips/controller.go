package trips

import (
	"net/http"

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

// GetAll godoc
// @Summary      List all trips
// @Tags         trips
// @Produce      json
// @Router       /trips/all [get]
func (c *Controller) GetAll(ctx *gin.Context) {
	trips, err := c.service.GetAll(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Trips retrieved successfully", trips)
}

// GetPage godoc
// @Summary      List trips page by page
// @Tags         trips
// @Produce      json
// @Param        page   query  int  false  "Zero-based page"
// @Param        limit  query  int  false  "Page size"
// @Router       /trips/paging [get]
func (c *Controller) GetPage(ctx *gin.Context) {
	page, limit := params.Paging(ctx)

	result, err := c.service.GetPage(ctx.Request.Context(), page, limit)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Trips retrieved successfully", result)
}

// GetByID godoc
// @Summary      Get a trip
// @Tags         trips
// @Produce      json
// @Param        id  path  int  true  "Trip ID"
// @Router       /trips/{id} [get]
func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := params.ID(ctx, "id")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	trip, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Trip retrieved successfully", trip)
}

// Create godoc
// @Summary      Schedule a trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request  body  TripRequest  true  "Trip"
// @Router       /trips [post]
func (c *Controller) Create(ctx *gin.Context) {
	var req TripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	trip, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Trip created successfully", trip, nil)
}

// Update godoc
// @Summary      Update a trip (id in body)
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request  body  TripRequest  true  "Trip"
// @Router       /trips [put]
func (c *Controller) Update(ctx *gin.Context) {
	var req TripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	trip, err := c.service.Update(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Trip updated successfully", trip)
}

// Delete godoc
// @Summary      Delete a trip without bookings
// @Tags         trips
// @Param        id  path  int  true  "Trip ID"
// @Router       /trips/{id} [delete]
func (c *Controller) Delete(ctx *gin.Context) {
	id, err := params.ID(ctx, "id")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Trip deleted successfully", nil)
}
