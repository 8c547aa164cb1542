package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	users      *service.UserService
	expiration time.Duration
	log        logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(users *service.UserService, expiration time.Duration, log logger.Logger) *AuthController {
	return &AuthController{
		users:      users,
		expiration: expiration,
		log:        orNop(log),
	}
}

// Register cadastra um novo usuário e retorna um token JWT
// @Summary Cadastra um usuário
// @Description Cria a conta (ou ativa um convite pendente com inviteToken) e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Dados de cadastro"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	session, err := c.users.Register(ctx.Request.Context(), service.RegisterInput{
		Email:       request.Email,
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		Password:    request.Password,
		Role:        request.Role,
		InviteToken: request.InviteToken,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	c.log.Info("usuário cadastrado", "user_id", session.User.ID, "role", session.User.Role)
	ctx.JSON(http.StatusCreated, c.authResponse(session))
}

// Login autentica um usuário e retorna um token JWT
// @Summary Autentica um usuário
// @Description Verifica as credenciais do usuário e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	session, err := c.users.Login(ctx.Request.Context(), request.Email, request.Password)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, c.authResponse(session))
}

// RefreshToken renova um token JWT
// @Summary Renova um token JWT
// @Description Renova um token JWT ainda válido
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Token a ser renovado"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	token, err := c.users.Refresh(request.Token)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshTokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(c.expiration),
	})
}

// Me retorna o usuário autenticado
// @Summary Usuário autenticado
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	u, err := c.users.Me(ctx.Request.Context(), p)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

func (c *AuthController) authResponse(s *service.Session) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     s.Token,
		ExpiresAt: time.Now().Add(c.expiration),
		User:      dto.ToUserResponse(s.User),
	}
}
