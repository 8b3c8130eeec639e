package reports

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

// GetRevenue godoc
// @Summary      Revenue per month or year
// @Tags         reports
// @Produce      json
// @Param        start       path  string  true  "yyyy-MM-dd"
// @Param        end         path  string  true  "yyyy-MM-dd"
// @Param        timeOption  path  string  true  "MONTH or YEAR"
// @Router       /reports/revenues/{start}/{end}/{timeOption} [get]
func (c *Controller) GetRevenue(ctx *gin.Context) {
	report, err := c.service.Revenue(ctx.Request.Context(), ctx.Param("start"), ctx.Param("end"), ctx.Param("timeOption"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Revenue report generated", report)
}

// GetWeekRevenue godoc
// @Summary      Daily revenue of one week
// @Tags         reports
// @Produce      json
// @Param        date  path  string  true  "Any day of the week, yyyy-MM-dd"
// @Router       /reports/revenues/{date} [get]
func (c *Controller) GetWeekRevenue(ctx *gin.Context) {
	// shares the :start wildcard with the ranged route
	report, err := c.service.WeekRevenue(ctx.Request.Context(), ctx.Param("start"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Revenue report generated", report)
}

// GetUsage godoc
// @Summary      Seat usage per coach
// @Tags         reports
// @Produce      json
// @Param        start       path  string  true  "yyyy-MM-dd"
// @Param        end         path  string  true  "yyyy-MM-dd"
// @Param        timeOption  path  string  true  "MONTH or YEAR"
// @Router       /reports/usages/{start}/{end}/{timeOption} [get]
func (c *Controller) GetUsage(ctx *gin.Context) {
	report, err := c.service.Usage(ctx.Request.Context(), ctx.Param("start"), ctx.Param("end"), ctx.Param("timeOption"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Coach usage report generated", report)
}

// GetTopRoutes godoc
// @Summary      Top 5 routes by tickets sold
// @Tags         reports
// @Produce      json
// @Param        start       path  string  true  "yyyy-MM-dd"
// @Param        end         path  string  true  "yyyy-MM-dd"
// @Param        timeOption  path  string  true  "MONTH or YEAR"
// @Router       /reports/toproute/{start}/{end}/{timeOption} [get]
func (c *Controller) GetTopRoutes(ctx *gin.Context) {
	report, err := c.service.TopRoutes(ctx.Request.Context(), ctx.Param("start"), ctx.Param("end"), ctx.Param("timeOption"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Top route report generated", report)
}

// GetDashboard godoc
// @Summary      Dashboard stat boxes
// @Tags         dashboard
// @Produce      json
// @Router       /dashboard/summary [get]
func (c *Controller) GetDashboard(ctx *gin.Context) {
	summary, err := c.service.Dashboard(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondOK(ctx, "Dashboard summary retrieved", summary)
}
