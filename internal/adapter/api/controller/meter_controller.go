package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// MeterController gerencia as leituras de medidores
type MeterController struct {
	meters   *service.MeterService
	location *time.Location
	log      logger.Logger
}

// NewMeterController cria uma nova instância de MeterController
func NewMeterController(meters *service.MeterService, location *time.Location, log logger.Logger) *MeterController {
	if location == nil {
		location = time.UTC
	}
	return &MeterController{
		meters:   meters,
		location: location,
		log:      orNop(log),
	}
}

// Create registra uma leitura de medidor
// @Summary Registra uma leitura
// @Description O consumo é atual - anterior; sem leitura anterior o consumo fica nulo
// @Tags meter-readings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reading body dto.MeterReadingRequest true "Dados da leitura"
// @Success 201 {object} dto.MeterReadingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /meter-readings [post]
func (c *MeterController) Create(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.MeterReadingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	readingDate, err := service.ParseDate(request.ReadingDate, c.location)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	r, err := c.meters.Record(ctx.Request.Context(), p, service.ReadingInput{
		ApartmentID:     request.ApartmentID,
		MeterType:       request.MeterType,
		CurrentReading:  request.CurrentReading,
		PreviousReading: request.PreviousReading,
		ReadingDate:     readingDate,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToMeterReadingResponse(r))
}

// List lista as leituras de um apartamento
// @Summary Lista leituras
// @Tags meter-readings
// @Produce json
// @Security BearerAuth
// @Param apartmentId query string false "ID do apartamento"
// @Param meterType query string false "WATER, GAS ou ELECTRICITY"
// @Success 200 {array} dto.MeterReadingResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /meter-readings [get]
func (c *MeterController) List(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	list, err := c.meters.List(ctx.Request.Context(), p, ctx.Query("apartmentId"), ctx.Query("meterType"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMeterReadingResponses(list))
}

// Latest retorna a leitura mais recente de um medidor
// @Summary Última leitura
// @Tags meter-readings
// @Produce json
// @Security BearerAuth
// @Param apartmentId query string true "ID do apartamento"
// @Param meterType query string true "WATER, GAS ou ELECTRICITY"
// @Success 200 {object} dto.MeterReadingResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /meter-readings/latest [get]
func (c *MeterController) Latest(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	r, err := c.meters.Latest(ctx.Request.Context(), p, ctx.Query("apartmentId"), ctx.Query("meterType"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMeterReadingResponse(r))
}
