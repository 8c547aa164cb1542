package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// RepairController gerencia os pedidos de reparo
type RepairController struct {
	repairs *service.RepairService
	log     logger.Logger
}

// NewRepairController cria uma nova instância de RepairController
func NewRepairController(repairs *service.RepairService, log logger.Logger) *RepairController {
	return &RepairController{
		repairs: repairs,
		log:     orNop(log),
	}
}

// Create abre um pedido de reparo
// @Summary Abre um pedido de reparo
// @Tags repair-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param repair body dto.RepairRequestCreate true "Dados do pedido"
// @Success 201 {object} dto.RepairRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /repair-requests [post]
func (c *RepairController) Create(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.RepairRequestCreate
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	r, err := c.repairs.Create(ctx.Request.Context(), p, service.RepairInput{
		ApartmentID: request.ApartmentID,
		Description: request.Description,
		Location:    request.Location,
		Priority:    request.Priority,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRepairRequestResponse(r))
}

// Update altera um pedido de reparo ou o seu status
// @Summary Atualiza um pedido de reparo
// @Description O autor edita enquanto PENDING; o status é alterado pela administração
// @Tags repair-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do pedido"
// @Param repair body dto.RepairRequestUpdate true "Alterações"
// @Success 200 {object} dto.RepairRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /repair-requests/{id} [put]
func (c *RepairController) Update(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.RepairRequestUpdate
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	r, err := c.repairs.Update(ctx.Request.Context(), p, ctx.Param("id"), service.RepairUpdate{
		Description: request.Description,
		Location:    request.Location,
		Priority:    request.Priority,
		Status:      request.Status,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRepairRequestResponse(r))
}

// List lista pedidos de reparo
// @Summary Lista pedidos de reparo
// @Tags repair-requests
// @Produce json
// @Security BearerAuth
// @Param blockId query string false "ID do bloco"
// @Param apartmentId query string false "ID do apartamento"
// @Param status query string false "Status do pedido"
// @Success 200 {array} dto.RepairRequestResponse
// @Router /repair-requests [get]
func (c *RepairController) List(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	list, err := c.repairs.List(ctx.Request.Context(), p, service.RepairQuery{
		BlockID:     ctx.Query("blockId"),
		ApartmentID: ctx.Query("apartmentId"),
		Status:      ctx.Query("status"),
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRepairRequestResponses(list))
}
