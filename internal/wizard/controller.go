package wizard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/params"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/tripsearch"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ChooseSeatRequest is one click on the seat map.
type ChooseSeatRequest struct {
	SeatNumber int   `json:"seatNumber" binding:"required,gt=0"`
	Select     *bool `json:"select" binding:"required"`
}

// SelectTripRequest picks a trip from the search result.
type SelectTripRequest struct {
	TripID int64 `json:"tripId" binding:"required,gt=0"`
}

func owner(ctx *gin.Context) (Owner, bool) {
	s, ok := middleware.CurrentSession(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "user session not found in context", nil, nil)
		return Owner{}, false
	}
	return Owner{UserID: s.UserID, Username: s.Username}, true
}

// Start godoc
// @Summary      Start a booking wizard with a fresh draft
// @Tags         wizard
// @Produce      json
// @Router       /wizard [post]
func (c *Controller) Start(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}

	st, err := c.service.Start(ctx.Request.Context(), o)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Wizard started", st, nil)
}

// Edit godoc
// @Summary      Start a wizard editing an existing booking
// @Tags         wizard
// @Produce      json
// @Param        bookingId  path  int  true  "Booking ID"
// @Router       /wizard/edit/{bookingId} [post]
func (c *Controller) Edit(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}
	bookingID, err := params.ID(ctx, "bookingId")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	st, err := c.service.Edit(ctx.Request.Context(), o, bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Wizard started", st, nil)
}

// Get godoc
// @Summary      Current step and draft of a wizard
// @Tags         wizard
// @Produce      json
// @Param        id  path  string  true  "Wizard ID"
// @Router       /wizard/{id} [get]
func (c *Controller) Get(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}

	st, err := c.service.Get(ctx.Request.Context(), o, ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Wizard retrieved successfully", st)
}

// Discard godoc
// @Summary      Drop a wizard and its draft
// @Tags         wizard
// @Param        id  path  string  true  "Wizard ID"
// @Router       /wizard/{id} [delete]
func (c *Controller) Discard(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}

	if err := c.service.Discard(ctx.Request.Context(), o, ctx.Param("id")); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Wizard discarded", nil)
}

// Search godoc
// @Summary      Search trips for the wizard's route
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        id       path  string                    true  "Wizard ID"
// @Param        request  body  tripsearch.SearchRequest  true  "Search form"
// @Router       /wizard/{id}/search [post]
func (c *Controller) Search(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}

	var req tripsearch.SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.service.Search(ctx.Request.Context(), o, ctx.Param("id"), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Trips retrieved successfully", result)
}

// Swap godoc
// @Summary      Swap source and destination
// @Tags         wizard
// @Produce      json
// @Param        id  path  string  true  "Wizard ID"
// @Router       /wizard/{id}/swap [post]
func (c *Controller) Swap(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}

	result, err := c.service.Swap(ctx.Request.Context(), o, ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Search endpoints swapped", result)
}

// SelectTrip godoc
// @Summary      Pick the trip of the booking
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        id       path  string             true  "Wizard ID"
// @Param        request  body  SelectTripRequest  true  "Trip"
// @Router       /wizard/{id}/trip [post]
func (c *Controller) SelectTrip(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}

	var req SelectTripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	st, err := c.service.SelectTrip(ctx.Request.Context(), o, ctx.Param("id"), req.TripID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Trip selected", st)
}

// SeatMap godoc
// @Summary      Seat map of the selected trip with the draft's seats chosen
// @Tags         wizard
// @Produce      json
// @Param        id  path  string  true  "Wizard ID"
// @Router       /wizard/{id}/seats [get]
func (c *Controller) SeatMap(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}

	seatMap, err := c.service.SeatMap(ctx.Request.Context(), o, ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Seat map retrieved successfully", seatMap)
}

// ChooseSeat godoc
// @Summary      Select or deselect one seat
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        id       path  string             true  "Wizard ID"
// @Param        request  body  ChooseSeatRequest  true  "Seat click"
// @Router       /wizard/{id}/seats [post]
func (c *Controller) ChooseSeat(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}

	var req ChooseSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	st, err := c.service.ChooseSeat(ctx.Request.Context(), o, ctx.Param("id"), req.SeatNumber, *req.Select)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Seat selection updated", st)
}

// UpdatePayment godoc
// @Summary      Patch customer and payment fields
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Param        id       path  string         true  "Wizard ID"
// @Param        request  body  UpdatePayment  true  "Fields to change"
// @Router       /wizard/{id}/payment [patch]
func (c *Controller) UpdatePayment(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}

	var patch UpdatePayment
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	st, err := c.service.UpdatePayment(ctx.Request.Context(), o, ctx.Param("id"), patch)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Payment information updated", st)
}

// Next godoc
// @Summary      Go to the next step
// @Tags         wizard
// @Produce      json
// @Param        id  path  string  true  "Wizard ID"
// @Router       /wizard/{id}/next [post]
func (c *Controller) Next(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}

	st, err := c.service.Next(ctx.Request.Context(), o, ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Moved to "+st.Step.String(), st)
}

// Back godoc
// @Summary      Go back one step
// @Tags         wizard
// @Produce      json
// @Param        id  path  string  true  "Wizard ID"
// @Router       /wizard/{id}/back [post]
func (c *Controller) Back(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}

	st, err := c.service.Back(ctx.Request.Context(), o, ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Moved to "+st.Step.String(), st)
}

// Submit godoc
// @Summary      Create (or update) the booking from the draft
// @Tags         wizard
// @Produce      json
// @Param        id  path  string  true  "Wizard ID"
// @Router       /wizard/{id}/submit [post]
func (c *Controller) Submit(ctx *gin.Context) {
	o, ok := owner(ctx)
	if !ok {
		return
	}

	result, err := c.service.Submit(ctx.Request.Context(), o, ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking saved successfully", result, nil)
}
