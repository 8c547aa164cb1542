package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// BlockController gerencia as requisições relacionadas a blocos
type BlockController struct {
	blocks *service.BlockService
	log    logger.Logger
}

// NewBlockController cria uma nova instância de BlockController
func NewBlockController(blocks *service.BlockService, log logger.Logger) *BlockController {
	return &BlockController{
		blocks: blocks,
		log:    orNop(log),
	}
}

// Create cria um bloco dentro da associação
// @Summary Cria um bloco
// @Tags blocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da associação"
// @Param block body dto.BlockRequest true "Dados do bloco"
// @Success 201 {object} dto.BlockResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /associations/{id}/blocks [post]
func (c *BlockController) Create(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.BlockRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	b, err := c.blocks.Create(ctx.Request.Context(), p, ctx.Param("id"), service.BlockInput{
		Name:    request.Name,
		Address: request.Address,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	c.log.Info("bloco criado", "block_id", b.ID, "association_id", b.AssociationID)
	ctx.JSON(http.StatusCreated, dto.ToBlockResponse(b))
}

// ListByAssociation lista os blocos de uma associação
// @Summary Lista blocos da associação
// @Tags blocks
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da associação"
// @Success 200 {array} dto.BlockResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /associations/{id}/blocks [get]
func (c *BlockController) ListByAssociation(ctx *gin.Context) {
	c.list(ctx, ctx.Param("id"))
}

// List lista os blocos visíveis, opcionalmente filtrados por associação
// @Summary Lista blocos
// @Tags blocks
// @Produce json
// @Security BearerAuth
// @Param associationId query string false "ID da associação"
// @Success 200 {array} dto.BlockResponse
// @Router /blocks [get]
func (c *BlockController) List(ctx *gin.Context) {
	c.list(ctx, ctx.Query("associationId"))
}

func (c *BlockController) list(ctx *gin.Context, associationID string) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	list, err := c.blocks.List(ctx.Request.Context(), p, associationID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBlockResponses(list))
}

// GetByID busca um bloco pelo ID
// @Summary Busca um bloco
// @Tags blocks
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do bloco"
// @Success 200 {object} dto.BlockResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blocks/{id} [get]
func (c *BlockController) GetByID(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	b, err := c.blocks.Get(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBlockResponse(b))
}

// Update atualiza um bloco
// @Summary Atualiza um bloco
// @Tags blocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do bloco"
// @Param block body dto.BlockRequest true "Dados do bloco"
// @Success 200 {object} dto.BlockResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blocks/{id} [put]
func (c *BlockController) Update(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.BlockRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	b, err := c.blocks.Update(ctx.Request.Context(), p, ctx.Param("id"), service.BlockInput{
		Name:    request.Name,
		Address: request.Address,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBlockResponse(b))
}
