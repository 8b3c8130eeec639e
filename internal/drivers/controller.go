package drivers

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
// @Summary      List all drivers
// @Tags         drivers
// @Produce      json
// @Router       /drivers/all [get]
func (c *Controller) GetAll(ctx *gin.Context) {
	drivers, err := c.service.GetAll(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Drivers retrieved successfully", drivers)
}

// GetPage godoc
// @Summary      List drivers page by page
// @Tags         drivers
// @Produce      json
// @Param        page   query  int  false  "Zero-based page"
// @Param        limit  query  int  false  "Page size"
// @Router       /drivers/paging [get]
func (c *Controller) GetPage(ctx *gin.Context) {
	page, limit := params.Paging(ctx)

	result, err := c.service.GetPage(ctx.Request.Context(), page, limit)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Drivers retrieved successfully", result)
}

// GetByID godoc
// @Summary      Get a driver
// @Tags         drivers
// @Produce      json
// @Param        id  path  int  true  "Driver ID"
// @Router       /drivers/{id} [get]
func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := params.ID(ctx, "id")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	driver, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Driver retrieved successfully", driver)
}

// Create godoc
// @Summary      Add a driver
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Param        request  body  DriverRequest  true  "Driver"
// @Router       /drivers [post]
func (c *Controller) Create(ctx *gin.Context) {
	var req DriverRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	driver, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Driver created successfully", driver, nil)
}

// Update godoc
// @Summary      Update a driver (id in body)
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Param        request  body  DriverRequest  true  "Driver"
// @Router       /drivers [put]
func (c *Controller) Update(ctx *gin.Context) {
	var req DriverRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	driver, err := c.service.Update(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Driver updated successfully", driver)
}

// Delete godoc
// @Summary      Delete a driver with no trips
// @Tags         drivers
// @Param        id  path  int  true  "Driver ID"
// @Router       /drivers/{id} [delete]
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

	response.RespondOK(ctx, "Driver deleted successfully", nil)
}

// CheckDuplicate godoc
// @Summary      Whether a field value is still free
// @Tags         drivers
// @Produce      json
// @Param        mode   path  string  true  "add or update"
// @Param        id     path  int     true  "Driver ID (ignored in add mode)"
// @Param        field  path  string  true  "licenseNumber, phone or email"
// @Param        value  path  string  true  "Value"
// @Router       /drivers/checkDuplicate/{mode}/{id}/{field}/{value} [get]
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
