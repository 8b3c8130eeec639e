package discounts

import (
	"github.com/gin-gonic/gin"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/middleware"
)

func SetupDiscountRoutes(rg *gin.RouterGroup, controller *Controller) {
	discounts := rg.Group("/discounts", middleware.Authorize("/discounts"))
	{
		discounts.GET("/all", controller.GetAll)                                            // GET /api/v1/discounts/all
		discounts.GET("/all/available", controller.GetAvailable)                            // GET /api/v1/discounts/all/available
		discounts.GET("/paging", controller.GetPage)                                        // GET /api/v1/discounts/paging?page=&limit=
		discounts.GET("/checkDuplicate/:mode/:id/:field/:value", controller.CheckDuplicate) // GET /api/v1/discounts/checkDuplicate/...
		discounts.GET("/:id", controller.GetByID)                                           // GET /api/v1/discounts/:id
		discounts.POST("", controller.Create)                                               // POST /api/v1/discounts
		discounts.PUT("", controller.Update)                                                // PUT /api/v1/discounts
		discounts.DELETE("/:id", controller.Delete)                                         // DELETE /api/v1/discounts/:id
	}
}
