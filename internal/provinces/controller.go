package provinces

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetAll godoc
// @Summary      List provinces
// @Tags         provinces
// @Produce      json
// @Router       /provinces/all [get]
func (c *Controller) GetAll(ctx *gin.Context) {
	provinces, err := c.service.GetAll(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Provinces retrieved successfully", provinces)
}
