package tripsearch

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Search godoc
// @Summary      Search trips of a route with remaining seats
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request  body  SearchRequest  true  "Search form"
// @Router       /trips/search [post]
func (c *Controller) Search(ctx *gin.Context) {
	s, ok := middleware.CurrentSession(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "user session not found in context", nil, nil)
		return
	}

	var req SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	criteria, err := ParseRequest(req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	result, err := c.service.Search(ctx.Request.Context(), s.ID, criteria)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Trips retrieved successfully", result)
}

// Swap godoc
// @Summary      Swap source and destination of the current search
// @Tags         trips
// @Produce      json
// @Router       /trips/search/swap [post]
func (c *Controller) Swap(ctx *gin.Context) {
	s, ok := middleware.CurrentSession(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "user session not found in context", nil, nil)
		return
	}

	result, err := c.service.Swap(ctx.Request.Context(), s.ID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Search endpoints swapped", result)
}
