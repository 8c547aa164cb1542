package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// AssociationController gerencia as requisições relacionadas a associações
type AssociationController struct {
	associations *service.AssociationService
	log          logger.Logger
}

// NewAssociationController cria uma nova instância de AssociationController
func NewAssociationController(associations *service.AssociationService, log logger.Logger) *AssociationController {
	return &AssociationController{
		associations: associations,
		log:          orNop(log),
	}
}

// Create cria uma nova associação e vincula o administrador a ela
// @Summary Cria uma associação
// @Tags associations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param association body dto.AssociationRequest true "Dados da associação"
// @Success 201 {object} dto.AssociationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /associations [post]
func (c *AssociationController) Create(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.AssociationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	a, err := c.associations.Create(ctx.Request.Context(), p, toAssociationInput(request))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	c.log.Info("associação criada", "association_id", a.ID, "user_id", p.UserID)
	ctx.JSON(http.StatusCreated, dto.ToAssociationResponse(a))
}

// GetByID busca uma associação pelo ID
// @Summary Busca uma associação
// @Tags associations
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da associação"
// @Success 200 {object} dto.AssociationResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /associations/{id} [get]
func (c *AssociationController) GetByID(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	a, err := c.associations.Get(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssociationResponse(a))
}

// List lista as associações visíveis ao usuário
// @Summary Lista associações
// @Tags associations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AssociationResponse
// @Router /associations [get]
func (c *AssociationController) List(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	list, err := c.associations.List(ctx.Request.Context(), p)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssociationResponses(list))
}

// Update atualiza os dados de uma associação
// @Summary Atualiza uma associação
// @Tags associations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da associação"
// @Param association body dto.AssociationRequest true "Dados da associação"
// @Success 200 {object} dto.AssociationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /associations/{id} [put]
func (c *AssociationController) Update(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.AssociationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	a, err := c.associations.Update(ctx.Request.Context(), p, ctx.Param("id"), toAssociationInput(request))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssociationResponse(a))
}

func toAssociationInput(r dto.AssociationRequest) service.AssociationInput {
	return service.AssociationInput{
		Name:    r.Name,
		Address: r.Address,
		Phone:   r.Phone,
		Email:   r.Email,
	}
}
