package discounts

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
// @Summary      List all discounts
// @Tags         discounts
// @Produce      json
// @Router       /discounts/all [get]
func (c *Controller) GetAll(ctx *gin.Context) {
	discounts, err := c.service.GetAll(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Discounts retrieved successfully", discounts)
}

// GetAvailable godoc
// @Summary      Discounts valid right now
// @Tags         discounts
// @Produce      json
// @Router       /discounts/all/available [get]
func (c *Controller) GetAvailable(ctx *gin.Context) {
	discounts, err := c.service.GetAvailable(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Available discounts retrieved successfully", discounts)
}

// GetPage godoc
// @Summary      List discounts page by page
// @Tags         discounts
// @Produce      json
// @Param        page   query  int  false  "Zero-based page"
// @Param        limit  query  int  false  "Page size"
// @Router       /discounts/paging [get]
func (c *Controller) GetPage(ctx *gin.Context) {
	page, limit := params.Paging(ctx)

	result, err := c.service.GetPage(ctx.Request.Context(), page, limit)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Discounts retrieved successfully", result)
}

// GetByID godoc
// @Summary      Get a discount
// @Tags         discounts
// @Produce      json
// @Param        id  path  int  true  "Discount ID"
// @Router       /discounts/{id} [get]
func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := params.ID(ctx, "id")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	discount, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Discount retrieved successfully", discount)
}

// Create godoc
// @Summary      Create a discount
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Param        request  body  DiscountRequest  true  "Discount"
// @Router       /discounts [post]
func (c *Controller) Create(ctx *gin.Context) {
	var req DiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	discount, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Discount created successfully", discount, nil)
}

// Update godoc
// @Summary      Update a discount (id in body)
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Param        request  body  DiscountRequest  true  "Discount"
// @Router       /discounts [put]
func (c *Controller) Update(ctx *gin.Context) {
	var req DiscountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	discount, err := c.service.Update(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Discount updated successfully", discount)
}

// Delete godoc
// @Summary      Delete a discount no trip applies
// @Tags         discounts
// @Param        id  path  int  true  "Discount ID"
// @Router       /discounts/{id} [delete]
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

	response.RespondOK(ctx, "Discount deleted successfully", nil)
}

// CheckDuplicate godoc
// @Summary      Whether a field value is still free
// @Tags         discounts
// @Produce      json
// @Param        mode   path  string  true  "add or update"
// @Param        id     path  int     true  "Discount ID (ignored in add mode)"
// @Param        field  path  string  true  "code"
// @Param        value  path  string  true  "Value"
// @Router       /discounts/checkDuplicate/{mode}/{id}/{field}/{value} [get]
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
