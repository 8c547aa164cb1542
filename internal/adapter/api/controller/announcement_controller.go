package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// AnnouncementController gerencia os anúncios dos blocos
type AnnouncementController struct {
	announcements *service.AnnouncementService
	log           logger.Logger
}

// NewAnnouncementController cria uma nova instância de AnnouncementController
func NewAnnouncementController(announcements *service.AnnouncementService, log logger.Logger) *AnnouncementController {
	return &AnnouncementController{
		announcements: announcements,
		log:           orNop(log),
	}
}

// Create publica um anúncio no bloco
// @Summary Publica um anúncio
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param announcement body dto.AnnouncementRequest true "Dados do anúncio"
// @Success 201 {object} dto.AnnouncementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /announcements [post]
func (c *AnnouncementController) Create(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var request dto.AnnouncementRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	a, err := c.announcements.Create(ctx.Request.Context(), p, service.AnnouncementInput{
		BlockID:  request.BlockID,
		Title:    request.Title,
		Content:  request.Content,
		Priority: request.Priority,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAnnouncementResponse(a))
}

// List lista os anúncios de um bloco
// @Summary Lista anúncios
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param blockId query string false "ID do bloco"
// @Success 200 {array} dto.AnnouncementResponse
// @Router /announcements [get]
func (c *AnnouncementController) List(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	list, err := c.announcements.List(ctx.Request.Context(), p, ctx.Query("blockId"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnnouncementResponses(list))
}
