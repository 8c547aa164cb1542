package service

import (
	"context"
	"fmt"
	"io"

	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/policy"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// StatementSheet é o nome da planilha do extrato
const StatementSheet = "Extras"

var statementHeaders = []string{"Apartament", "Cheltuială", "Categorie", "Scadență", "Sumă", "Plătit", "Rest de plată", "Status"}

// ReportService exporta extratos em planilhas xlsx
type ReportService struct {
	base
	locator
	expenses expense.Repository
}

// NewReportService cria uma nova instância de ReportService
func NewReportService(blocks block.Repository, expenses expense.Repository, opts ...Option) *ReportService {
	return &ReportService{
		base:     newBase(opts),
		locator:  locator{blocks: blocks},
		expenses: expenses,
	}
}

// Statement gera o extrato de cotas de um bloco administrado pelo Principal
func (s *ReportService) Statement(ctx context.Context, p auth.Principal, blockID string, w io.Writer) (*block.Block, error) {
	b, res, err := s.block(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if err := policy.Require(policy.CanManage(p, res)); err != nil {
		return nil, err
	}
	return b, s.write(ctx, b, w)
}

// ExportBlock gera o extrato sem verificação de escopo, para uso operacional
func (s *ReportService) ExportBlock(ctx context.Context, blockID string, w io.Writer) (*block.Block, error) {
	b, err := s.blocks.FindByID(ctx, blockID)
	if err != nil {
		return nil, err
	}
	return b, s.write(ctx, b, w)
}

func (s *ReportService) write(ctx context.Context, b *block.Block, w io.Writer) error {
	allocations, err := s.expenses.ListAllocations(ctx, expense.AllocationFilter{BlockID: b.ID})
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", StatementSheet); err != nil {
		return fmt.Errorf("falha ao criar planilha: %w", err)
	}

	headers := make([]interface{}, len(statementHeaders))
	for i, header := range statementHeaders {
		headers[i] = header
	}
	if err := setRow(f, 1, 1, headers); err != nil {
		return err
	}

	total, paid := decimal.Zero, decimal.Zero
	for i, a := range allocations {
		row := i + 2
		description, category := "", ""
		if a.Expense != nil {
			description = a.Expense.Description
			category = string(a.Expense.Category)
		}
		values := []interface{}{
			a.ApartmentNumber,
			description,
			category,
			a.DueDate.Format("02.01.2006"),
			a.Amount.InexactFloat64(),
			a.PaidAmount.InexactFloat64(),
			a.Outstanding().InexactFloat64(),
			string(a.Status),
		}
		if err := setRow(f, row, 1, values); err != nil {
			return err
		}
		total = total.Add(a.Amount)
		paid = paid.Add(a.PaidAmount)
	}

	totalsRow := len(allocations) + 2
	if err := setRow(f, totalsRow, 1, []interface{}{"Total"}); err != nil {
		return err
	}
	// Colunas E a G: valor, pago e em aberto
	if err := setRow(f, totalsRow, 5, []interface{}{
		total.InexactFloat64(), paid.InexactFloat64(), total.Sub(paid).InexactFloat64(),
	}); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("falha ao gravar planilha: %w", err)
	}
	s.log.Debug("extrato exportado", "block_id", b.ID, "rows", len(allocations))
	return nil
}

// setRow grava values na linha row a partir da coluna firstCol
func setRow(f *excelize.File, row, firstCol int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(firstCol+i, row)
		if err != nil {
			return fmt.Errorf("falha ao localizar célula: %w", err)
		}
		if err := f.SetCellValue(StatementSheet, cell, v); err != nil {
			return fmt.Errorf("falha ao preencher célula %s: %w", cell, err)
		}
	}
	return nil
}
