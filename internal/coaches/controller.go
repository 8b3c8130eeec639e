package coaches

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/duplicate"
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
// @Summary      List all coaches
// @Tags         coaches
// @Produce      json
// @Router       /coaches/all [get]
func (c *Controller) GetAll(ctx *gin.Context) {
	coaches, err := c.service.GetAll(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Coaches retrieved successfully", coaches)
}

// GetPage godoc
// @Summary      List coaches page by page
// @Tags         coaches
// @Produce      json
// @Param        page   query  int  false  "Zero-based page"
// @Param        limit  query  int  false  "Page size"
// @Router       /coaches/paging [get]
func (c *Controller) GetPage(ctx *gin.Context) {
	page, limit := params.Paging(ctx)

	result, err := c.service.GetPage(ctx.Request.Context(), page, limit)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Coaches retrieved successfully", result)
}

// GetByID godoc
// @Summary      Get a coach
// @Tags         coaches
// @Produce      json
// @Param        id  path  int  true  "Coach ID"
// @Router       /coaches/{id} [get]
func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := params.ID(ctx, "id")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	coach, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Coach retrieved successfully", coach)
}

// Create godoc
// @Summary      Register a coach
// @Tags         coaches
// @Accept       json
// @Produce      json
// @Param        request  body  CoachRequest  true  "Coach"
// @Router       /coaches [post]
func (c *Controller) Create(ctx *gin.Context) {
	var req CoachRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	coach, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Coach created successfully", coach, nil)
}

// Update godoc
// @Summary      Update a coach (id in body)
// @Tags         coaches
// @Accept       json
// @Produce      json
// @Param        request  body  CoachRequest  true  "Coach"
// @Router       /coaches [put]
func (c *Controller) Update(ctx *gin.Context) {
	var req CoachRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	coach, err := c.service.Update(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Coach updated successfully", coach)
}

// Delete godoc
// @Summary      Delete a coach that no trip uses
// @Tags         coaches
// @Param        id  path  int  true  "Coach ID"
// @Router       /coaches/{id} [delete]
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

	response.RespondOK(ctx, "Coach deleted successfully", nil)
}

// CheckDuplicate godoc
// @Summary      Whether a field value is still free
// @Tags         coaches
// @Produce      json
// @Param        mode   path  string  true  "add or update"
// @Param        id     path  int     true  "Coach ID (ignored in add mode)"
// @Param        field  path  string  true  "licensePlate"
// @Param        value  path  string  true  "Value"
// @Router       /coaches/checkDuplicate/{mode}/{id}/{field}/{value} [get]
func (c *Controller) CheckDuplicate(ctx *gin.Context) {
	chk, err := duplicate.Parse(ctx, duplicateColumns)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	free, err := c.service.CheckDuplicate(ctx.Request.Context(), chk)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Duplicate check completed", free)
}
