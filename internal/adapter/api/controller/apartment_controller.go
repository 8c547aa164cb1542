package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// ApartmentController gerencia as requisições relacionadas a apartamentos
type ApartmentController struct {
	apartments *service.ApartmentService
	log        logger.Logger
}

// NewApartmentController cria uma nova instância de ApartmentController
func NewApartmentController(apartments *service.ApartmentService, log logger.Logger) *ApartmentController {
	return &ApartmentController{
		apartments: apartments,
		log:        orNop(log),
	}
}

// Create cria um apartamento dentro do bloco
// @Summary Cria um apartamento
// @Tags apartments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do bloco"
// @Param apartment body dto.ApartmentRequest true "Dados do apartamento"
// @Success 201 {object} dto.ApartmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /blocks/{id}/apartments [post]
func (c *ApartmentController) Create(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.ApartmentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	a, err := c.apartments.Create(ctx.Request.Context(), p, ctx.Param("id"), toApartmentInput(request))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	c.log.Info("apartamento criado", "apartment_id", a.ID, "block_id", a.BlockID)
	ctx.JSON(http.StatusCreated, dto.ToApartmentResponse(a))
}

// ListByBlock lista os apartamentos de um bloco
// @Summary Lista apartamentos do bloco
// @Tags apartments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do bloco"
// @Success 200 {array} dto.ApartmentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /blocks/{id}/apartments [get]
func (c *ApartmentController) ListByBlock(ctx *gin.Context) {
	c.list(ctx, ctx.Param("id"))
}

// List lista apartamentos filtrados por bloco
// @Summary Lista apartamentos
// @Tags apartments
// @Produce json
// @Security BearerAuth
// @Param blockId query string false "ID do bloco"
// @Success 200 {array} dto.ApartmentResponse
// @Router /apartments [get]
func (c *ApartmentController) List(ctx *gin.Context) {
	c.list(ctx, ctx.Query("blockId"))
}

func (c *ApartmentController) list(ctx *gin.Context, blockID string) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	list, err := c.apartments.List(ctx.Request.Context(), p, blockID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToApartmentResponses(list))
}

// GetByID busca um apartamento pelo ID
// @Summary Busca um apartamento
// @Tags apartments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do apartamento"
// @Success 200 {object} dto.ApartmentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /apartments/{id} [get]
func (c *ApartmentController) GetByID(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	a, err := c.apartments.Get(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToApartmentResponse(a))
}

// Update atualiza um apartamento
// @Summary Atualiza um apartamento
// @Tags apartments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do apartamento"
// @Param apartment body dto.ApartmentRequest true "Dados do apartamento"
// @Success 200 {object} dto.ApartmentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /apartments/{id} [put]
func (c *ApartmentController) Update(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.ApartmentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	a, err := c.apartments.Update(ctx.Request.Context(), p, ctx.Param("id"), toApartmentInput(request))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToApartmentResponse(a))
}

func toApartmentInput(r dto.ApartmentRequest) service.ApartmentInput {
	return service.ApartmentInput{
		Number:  r.Number,
		Floor:   r.Floor,
		Area:    r.Area,
		OwnerID: r.OwnerID,
	}
}
