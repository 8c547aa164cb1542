package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// IdempotencyKeyHeader é o cabeçalho que identifica tentativas do mesmo pagamento
const IdempotencyKeyHeader = "Idempotency-Key"

// PaymentController gerencia as requisições relacionadas a pagamentos
type PaymentController struct {
	payments *service.PaymentService
	log      logger.Logger
}

// NewPaymentController cria uma nova instância de PaymentController
func NewPaymentController(payments *service.PaymentService, log logger.Logger) *PaymentController {
	return &PaymentController{
		payments: payments,
		log:      orNop(log),
	}
}

// Create registra o pagamento de uma cota
// @Summary Registra um pagamento
// @Description Com Idempotency-Key, repetições devolvem o pagamento original com status 200
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Chave de idempotência"
// @Param payment body dto.PaymentRequest true "Dados do pagamento"
// @Success 201 {object} dto.PaymentResponse
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /payments [post]
func (c *PaymentController) Create(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	pay, replayed, err := c.payments.Pay(ctx.Request.Context(), p, service.PaymentInput{
		ApartmentExpenseID: request.ApartmentExpenseID,
		ApartmentID:        request.ApartmentID,
		ExpenseID:          request.ExpenseID,
		Amount:             request.Amount,
		Method:             request.Method,
		Reference:          request.Reference,
		IdempotencyKey:     ctx.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	if replayed {
		ctx.JSON(http.StatusOK, dto.ToPaymentResponse(pay))
		return
	}

	c.log.Info("pagamento registrado",
		"payment_id", pay.ID,
		"apartment_expense_id", pay.ApartmentExpenseID,
		"amount", pay.Amount.String(),
	)
	ctx.JSON(http.StatusCreated, dto.ToPaymentResponse(pay))
}

// GetByID busca um pagamento pelo ID
// @Summary Busca um pagamento
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do pagamento"
// @Success 200 {object} dto.PaymentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /payments/{id} [get]
func (c *PaymentController) GetByID(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	pay, err := c.payments.Get(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentResponse(pay))
}

// List lista os pagamentos de um apartamento
// @Summary Lista pagamentos
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param apartmentId query string false "ID do apartamento"
// @Success 200 {array} dto.PaymentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /payments [get]
func (c *PaymentController) List(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	list, err := c.payments.List(ctx.Request.Context(), p, ctx.Query("apartmentId"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentResponses(list))
}
