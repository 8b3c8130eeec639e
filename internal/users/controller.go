package users

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
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Router       /users/all [get]
func (c *Controller) GetAll(ctx *gin.Context) {
	users, err := c.service.GetAll(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Users retrieved successfully", users)
}

// GetPage godoc
// @Summary      List users page by page
// @Tags         users
// @Produce      json
// @Param        page   query  int  false  "Zero-based page"
// @Param        limit  query  int  false  "Page size"
// @Router       /users/paging [get]
func (c *Controller) GetPage(ctx *gin.Context) {
	page, limit := params.Paging(ctx)

	result, err := c.service.GetPage(ctx.Request.Context(), page, limit)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Users retrieved successfully", result)
}

// GetByID godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "User ID"
// @Router       /users/{id} [get]
func (c *Controller) GetByID(ctx *gin.Context) {
	id, err := params.ID(ctx, "id")
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	user, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "User retrieved successfully", user)
}

// Create godoc
// @Summary      Create a back-office user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  UserRequest  true  "User"
// @Router       /users [post]
func (c *Controller) Create(ctx *gin.Context) {
	var req UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	user, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "User created successfully", user, nil)
}

// Update godoc
// @Summary      Update a user (id in body)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body  UserRequest  true  "User"
// @Router       /users [put]
func (c *Controller) Update(ctx *gin.Context) {
	var req UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	user, err := c.service.Update(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "User updated successfully", user)
}

// Delete godoc
// @Summary      Delete a user without bookings
// @Tags         users
// @Param        id  path  int  true  "User ID"
// @Router       /users/{id} [delete]
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

	response.RespondOK(ctx, "User deleted successfully", nil)
}

// CheckDuplicate godoc
// @Summary      Whether a field value is still free
// @Tags         users
// @Produce      json
// @Param        mode   path  string  true  "add or update"
// @Param        id     path  int     true  "User ID (ignored in add mode)"
// @Param        field  path  string  true  "username, email or phone"
// @Param        value  path  string  true  "Value"
// @Router       /users/checkDuplicate/{mode}/{id}/{field}/{value} [get]
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

// GetPermission godoc
// @Summary      Permission map of a user
// @Tags         users
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Router       /users/permission/{username} [get]
func (c *Controller) GetPermission(ctx *gin.Context) {
	perms, err := c.service.GetPermission(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Permission retrieved successfully", perms)
}
