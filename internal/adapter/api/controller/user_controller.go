package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// UserController gerencia as requisições relacionadas a usuários
type UserController struct {
	users *service.UserService
	log   logger.Logger
}

// NewUserController cria uma nova instância de UserController
func NewUserController(users *service.UserService, log logger.Logger) *UserController {
	return &UserController{
		users: users,
		log:   orNop(log),
	}
}

// Invite convida um usuário para a associação
// @Summary Convida um usuário
// @Description Cria (ou vincula) um usuário com o papel informado na associação
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da associação"
// @Param invite body dto.InviteRequest true "Dados do convite"
// @Success 201 {object} dto.InviteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /associations/{id}/invite [post]
func (c *UserController) Invite(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.InviteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	invitation, err := c.users.Invite(ctx.Request.Context(), p, ctx.Param("id"), service.InviteInput{
		Email:     request.Email,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Role:      request.Role,
		BlockID:   request.BlockID,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.InviteResponse{
		UserResponse: dto.ToUserResponse(invitation.User),
		InviteToken:  invitation.Token,
	})
}

// ListByAssociation lista os usuários de uma associação de forma paginada
// @Summary Lista usuários da associação
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da associação"
// @Param search query string false "Busca por nome ou email"
// @Param page query int false "Página (a partir de 0)"
// @Param size query int false "Itens por página"
// @Success 200 {object} dto.PageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /associations/{id}/users [get]
func (c *UserController) ListByAssociation(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	pagination := pageParams(ctx)
	users, total, err := c.users.ListByAssociation(ctx.Request.Context(), p, ctx.Param("id"), service.UserQuery{
		Search: ctx.Query("search"),
		Limit:  pagination.Size,
		Offset: pagination.Offset(),
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPageResponse(dto.ToUserResponses(users), total, pagination))
}

// List lista os usuários visíveis ao usuário autenticado
// @Summary Lista usuários
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Busca por nome ou email"
// @Param page query int false "Página (a partir de 0)"
// @Param size query int false "Itens por página"
// @Success 200 {object} dto.PageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	pagination := pageParams(ctx)
	users, total, err := c.users.List(ctx.Request.Context(), p, service.UserQuery{
		Search: ctx.Query("search"),
		Limit:  pagination.Size,
		Offset: pagination.Offset(),
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPageResponse(dto.ToUserResponses(users), total, pagination))
}

// pageParams lê page e size da query string
func pageParams(ctx *gin.Context) dto.Pagination {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	return dto.GetPagination(page, size)
}
