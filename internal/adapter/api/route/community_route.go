package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/controller"
)

// SetupCommunityRoutes configura leituras, anúncios, reparos e o painel
func SetupCommunityRoutes(
	router *gin.RouterGroup,
	meters *controller.MeterController,
	announcements *controller.AnnouncementController,
	repairs *controller.RepairController,
	dashboard *controller.DashboardController,
) {
	meterRouter := router.Group("/meter-readings")
	{
		meterRouter.POST("", meters.Create)
		meterRouter.GET("", meters.List)
		meterRouter.GET("/latest", meters.Latest)
	}

	announcementRouter := router.Group("/announcements")
	{
		announcementRouter.POST("", announcements.Create)
		announcementRouter.GET("", announcements.List)
	}

	repairRouter := router.Group("/repair-requests")
	{
		repairRouter.POST("", repairs.Create)
		repairRouter.GET("", repairs.List)
		repairRouter.PUT("/:id", repairs.Update)
	}

	router.GET("/dashboard/stats", dashboard.Stats)
}
