package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/controller"
)

// SetupAuthRoutes configura as rotas públicas de autenticação e a rota /me,
// que recebe o middleware de autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController, authenticated gin.HandlerFunc) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/register", authController.Register)
		authRouter.POST("/login", authController.Login)
		authRouter.POST("/refresh", authController.RefreshToken)

		// Requer token válido
		authRouter.GET("/me", authenticated, authController.Me)
	}
}
