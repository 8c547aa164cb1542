package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/controller"
)

// SetupAssociationRoutes configura as rotas de associações
func SetupAssociationRoutes(router *gin.RouterGroup, associations *controller.AssociationController, blocks *controller.BlockController) {
	associationRouter := router.Group("/associations")
	{
		associationRouter.POST("", associations.Create)
		associationRouter.GET("", associations.List)
		associationRouter.GET("/:id", associations.GetByID)
		associationRouter.PUT("/:id", associations.Update)

		associationRouter.POST("/:id/blocks", blocks.Create)
		associationRouter.GET("/:id/blocks", blocks.ListByAssociation)
	}
}

// SetupBlockRoutes configura as rotas de blocos e apartamentos
func SetupBlockRoutes(router *gin.RouterGroup, blocks *controller.BlockController, apartments *controller.ApartmentController, dashboard *controller.DashboardController) {
	blockRouter := router.Group("/blocks")
	{
		blockRouter.GET("", blocks.List)
		blockRouter.GET("/:id", blocks.GetByID)
		blockRouter.PUT("/:id", blocks.Update)

		blockRouter.POST("/:id/apartments", apartments.Create)
		blockRouter.GET("/:id/apartments", apartments.ListByBlock)
	}

	router.GET("/reports/blocks/:id/statement.xlsx", dashboard.Statement)

	apartmentRouter := router.Group("/apartments")
	{
		apartmentRouter.GET("", apartments.List)
		apartmentRouter.GET("/:id", apartments.GetByID)
		apartmentRouter.PUT("/:id", apartments.Update)
	}
}
