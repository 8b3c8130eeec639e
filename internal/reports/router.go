package reports

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
)

func SetupReportRoutes(rg *gin.RouterGroup, controller *Controller) {
	reports := rg.Group("/reports", middleware.Authorize("/reports"))
	{
		reports.GET("/revenues/:start/:end/:timeOption", controller.GetRevenue)   // GET /api/v1/reports/revenues/:start/:end/:timeOption
		reports.GET("/revenues/:start", controller.GetWeekRevenue)                // GET /api/v1/reports/revenues/:date
		reports.GET("/usages/:start/:end/:timeOption", controller.GetUsage)       // GET /api/v1/reports/usages/:start/:end/:timeOption
		reports.GET("/toproute/:start/:end/:timeOption", controller.GetTopRoutes) // GET /api/v1/reports/toproute/:start/:end/:timeOption
	}

	dashboard := rg.Group("/dashboard", middleware.Authorize("/dashboard"))
	{
		dashboard.GET("/summary", controller.GetDashboard) // GET /api/v1/dashboard/summary
	}
}
