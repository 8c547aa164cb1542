package route

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/controller"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Controllers reúne os controladores montados pela aplicação
type Controllers struct {
	Auth         *controller.AuthController
	User         *controller.UserController
	Association  *controller.AssociationController
	Block        *controller.BlockController
	Apartment    *controller.ApartmentController
	Expense      *controller.ExpenseController
	Payment      *controller.PaymentController
	Meter        *controller.MeterController
	Announcement *controller.AnnouncementController
	Repair       *controller.RepairController
	Dashboard    *controller.DashboardController
}

// Setup registra todas as rotas sob basePath. authenticated é o middleware
// JWT aplicado ao grupo protegido.
func Setup(router *gin.Engine, basePath string, c Controllers, authenticated gin.HandlerFunc) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(basePath)
	SetupAuthRoutes(api, c.Auth, authenticated)

	protected := api.Group("")
	protected.Use(authenticated)
	{
		SetupUserRoutes(protected, c.User)
		SetupAssociationRoutes(protected, c.Association, c.Block)
		SetupBlockRoutes(protected, c.Block, c.Apartment, c.Dashboard)
		SetupLedgerRoutes(protected, c.Expense, c.Payment)
		SetupCommunityRoutes(protected, c.Meter, c.Announcement, c.Repair, c.Dashboard)
	}
}
