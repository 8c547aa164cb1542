package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// ExpenseController gerencia o lançamento e a distribuição de despesas
type ExpenseController struct {
	expenses *service.ExpenseService
	aging    *service.AgingService
	location *time.Location
	log      logger.Logger
}

// NewExpenseController cria uma nova instância de ExpenseController.
// location interpreta datas sem horário (AAAA-MM-DD).
func NewExpenseController(expenses *service.ExpenseService, aging *service.AgingService, location *time.Location, log logger.Logger) *ExpenseController {
	if location == nil {
		location = time.UTC
	}
	return &ExpenseController{
		expenses: expenses,
		aging:    aging,
		location: location,
		log:      orNop(log),
	}
}

// Create lança uma despesa no bloco e, por padrão, distribui as cotas
// @Summary Lança uma despesa
// @Description Cria a despesa e a reparte entre os apartamentos do bloco na mesma transação
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param expense body dto.ExpenseRequest true "Dados da despesa"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /expenses [post]
func (c *ExpenseController) Create(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.ExpenseRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	dueDate, err := service.ParseDate(request.DueDate, c.location)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	category, err := expense.ParseCategory(request.Category)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	e, err := c.expenses.Create(ctx.Request.Context(), p, service.ExpenseInput{
		BlockID:          request.BlockID,
		Description:      request.Description,
		Amount:           request.Amount,
		Category:         category,
		DueDate:          dueDate,
		Policy:           request.DistributionPolicy,
		SkipDistribution: request.Distribute != nil && !*request.Distribute,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(e))
}

// Distribute reparte uma despesa ainda não distribuída
// @Summary Distribui uma despesa
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da despesa"
// @Param distribute body dto.DistributeRequest false "Política de distribuição"
// @Success 201 {array} dto.ApartmentExpenseResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /expenses/{id}/distribute [post]
func (c *ExpenseController) Distribute(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.DistributeRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			badRequest(ctx, err)
			return
		}
	}

	allocations, err := c.expenses.Distribute(ctx.Request.Context(), p, ctx.Param("id"), request.DistributionPolicy)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	c.log.Info("despesa distribuída", "expense_id", ctx.Param("id"), "allocations", len(allocations))
	ctx.JSON(http.StatusCreated, dto.ToApartmentExpenseResponses(allocations))
}

// GetByID busca uma despesa pelo ID
// @Summary Busca uma despesa
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da despesa"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /expenses/{id} [get]
func (c *ExpenseController) GetByID(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	e, err := c.expenses.Get(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(e))
}

// List lista as despesas de um bloco
// @Summary Lista despesas
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param blockId query string false "ID do bloco"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /expenses [get]
func (c *ExpenseController) List(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	list, err := c.expenses.List(ctx.Request.Context(), p, ctx.Query("blockId"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponses(list))
}

// ListAllocations lista as cotas de apartamentos
// @Summary Lista cotas de apartamentos
// @Tags apartment-expenses
// @Produce json
// @Security BearerAuth
// @Param apartmentId query string false "ID do apartamento"
// @Param expenseId query string false "ID da despesa"
// @Param status query string false "PENDING, PAID ou OVERDUE"
// @Success 200 {array} dto.ApartmentExpenseResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /apartment-expenses [get]
func (c *ExpenseController) ListAllocations(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	q := service.AllocationQuery{
		ApartmentID: ctx.Query("apartmentId"),
		ExpenseID:   ctx.Query("expenseId"),
	}
	if s := ctx.Query("status"); s != "" {
		status, err := expense.ParseStatus(s)
		if err != nil {
			respondError(ctx, c.log, err)
			return
		}
		q.Status = status
	}

	list, err := c.expenses.ListAllocations(ctx.Request.Context(), p, q)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToApartmentExpenseResponses(list))
}

// SweepOverdue marca como OVERDUE as cotas pendentes vencidas da associação do usuário
// @Summary Varredura de cotas vencidas
// @Description Idempotente e restrita à associação do administrador; asOf vazio usa o horário do servidor e datas futuras são recusadas
// @Tags apartment-expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sweep body dto.SweepRequest false "Data de referência"
// @Success 200 {object} dto.SweepResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /apartment-expenses/sweep-overdue [post]
func (c *ExpenseController) SweepOverdue(ctx *gin.Context) {
	var request dto.SweepRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			badRequest(ctx, err)
			return
		}
	}

	p, ok := principal(ctx)
	if !ok {
		return
	}

	asOf, err := service.ParseDate(request.AsOf, c.location)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	updated, asOf, err := c.aging.SweepAssociation(ctx.Request.Context(), p, asOf)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SweepResponse{Updated: updated, AsOf: asOf})
}
