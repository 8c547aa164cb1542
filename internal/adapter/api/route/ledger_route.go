package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
)

// SetupLedgerRoutes configura as rotas de despesas, cotas e pagamentos
func SetupLedgerRoutes(router *gin.RouterGroup, expenses *controller.ExpenseController, payments *controller.PaymentController) {
	expenseRouter := router.Group("/expenses")
	{
		expenseRouter.POST("", expenses.Create)
		expenseRouter.GET("", expenses.List)
		expenseRouter.GET("/:id", expenses.GetByID)
		expenseRouter.POST("/:id/distribute", expenses.Distribute)
	}

	allocationRouter := router.Group("/apartment-expenses")
	{
		allocationRouter.GET("", expenses.ListAllocations)
		// Varredura manual restrita à administração da associação
		allocationRouter.POST("/sweep-overdue", auth.RoleAuthMiddleware(user.RoleAdminAssociation), expenses.SweepOverdue)
	}

	paymentRouter := router.Group("/payments")
	{
		paymentRouter.POST("", payments.Create)
		paymentRouter.GET("", payments.List)
		paymentRouter.GET("/:id", payments.GetByID)
	}
}
