package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/controller"
)

// SetupUserRoutes configura as rotas de usuários (grupo já autenticado)
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController) {
	router.GET("/users", userController.List)
	router.POST("/associations/:id/invite", userController.Invite)
	router.GET("/associations/:id/users", userController.ListByAssociation)
	// Forma usada pelo cliente web
	router.GET("/associations/users/:id", userController.ListByAssociation)
}
