package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardController expõe o painel e os extratos
type DashboardController struct {
	dashboard *service.DashboardService
	reports   *service.ReportService
	log       logger.Logger
}

// NewDashboardController cria uma nova instância de DashboardController
func NewDashboardController(dashboard *service.DashboardService, reports *service.ReportService, log logger.Logger) *DashboardController {
	return &DashboardController{
		dashboard: dashboard,
		reports:   reports,
		log:       orNop(log),
	}
}

// Stats retorna as estatísticas do escopo do usuário
// @Summary Estatísticas do painel
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dashboard.Stats
// @Router /dashboard/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	stats, err := c.dashboard.Stats(ctx.Request.Context(), p)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// Statement exporta o extrato de cotas de um bloco em xlsx
// @Summary Extrato do bloco
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "ID do bloco"
// @Success 200 {file} file
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /reports/blocks/{id}/statement.xlsx [get]
func (c *DashboardController) Statement(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	b, err := c.reports.Statement(ctx.Request.Context(), p, ctx.Param("id"), &buf)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	filename := fmt.Sprintf("extras_%s_%s.xlsx", b.ID, time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
