package provinces

import (
	"github.com/gin-gonic/gin"
)

// SetupProvinceRoutes mounts the province list. Every screen with a route
// form needs it, so only a session is required.
func SetupProvinceRoutes(rg *gin.RouterGroup, controller *Controller) {
	provinces := rg.Group("/provinces")
	{
		provinces.GET("/all", controller.GetAll) // GET /api/v1/provinces/all
	}
}
