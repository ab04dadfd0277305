package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// PDFFilename nombre del adjunto PDF.
const PDFFilename = "relatorio_movimentacoes.pdf"

// MovementReportUseCase filtra el libro de movimientos y lo exporta (CSV / PDF). Solo lectura.
type MovementReportUseCase struct {
	movementRepo repository.MovementRepository
	productRepo  repository.ProductRepository
	pdf          PDFGenerator
	loc          *time.Location
}

// NewMovementReportUseCase construye el caso de uso. loc define el día de calendario de los filtros
// y de las fechas exportadas; pdf puede ser nil si no se expone la exportación PDF.
func NewMovementReportUseCase(
	movementRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	pdf PDFGenerator,
	loc *time.Location,
) *MovementReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &MovementReportUseCase{movementRepo: movementRepo, productRepo: productRepo, pdf: pdf, loc: loc}
}

// Location zona horaria del reporte.
func (uc *MovementReportUseCase) Location() *time.Location { return uc.loc }

// FilterMovements devuelve las entradas del libro que cumplen el filtro, más recientes primero.
func (uc *MovementReportUseCase) FilterMovements(ctx context.Context, f Filter) ([]*entity.Movement, error) {
	list, err := uc.movementRepo.List(ctx, f.Repository())
	if err != nil {
		return nil, fmt.Errorf("reporte: listar movimientos: %w", err)
	}
	return list, nil
}

// Rows desnormaliza nombre, código y categoría del producto en cada entrada, en el orden dado.
// ErrNotFound si alguna entrada referencia un producto inexistente.
func (uc *MovementReportUseCase) Rows(ctx context.Context, entries []*entity.Movement) ([]dto.MovementReportRow, error) {
	products := make(map[int64]*entity.Product)
	rows := make([]dto.MovementReportRow, 0, len(entries))
	for _, m := range entries {
		p, ok := products[m.ProductID]
		if !ok {
			var err error
			p, err = uc.productRepo.GetByID(ctx, m.ProductID)
			if err != nil {
				return nil, fmt.Errorf("reporte: producto %d: %w", m.ProductID, err)
			}
			if p == nil {
				return nil, fmt.Errorf("%w: producto %d del movimiento %d", domain.ErrNotFound, m.ProductID, m.ID)
			}
			products[m.ProductID] = p
		}
		rows = append(rows, dto.MovementReportRow{
			ID:              m.ID,
			Date:            m.CreatedAt.In(uc.loc),
			ProductID:       p.ID,
			ProductName:     p.Name,
			ProductCode:     p.Code,
			ProductCategory: p.Category,
			Kind:            string(m.Kind),
			Quantity:        m.Quantity,
		})
	}
	return rows, nil
}

// Report aplica los parámetros de query y devuelve la respuesta del listado.
func (uc *MovementReportUseCase) Report(ctx context.Context, q dto.MovementReportQuery) (*dto.MovementReportResponse, error) {
	f, err := ParseFilter(q, uc.loc)
	if err != nil {
		return nil, err
	}
	entries, err := uc.FilterMovements(ctx, f)
	if err != nil {
		return nil, err
	}
	rows, err := uc.Rows(ctx, entries)
	if err != nil {
		return nil, err
	}
	start, end, kind := f.Echo()
	return &dto.MovementReportResponse{StartDate: start, EndDate: end, Kind: kind, Items: rows, Total: len(rows)}, nil
}

// ExportCSV serializa las entradas dadas (ya filtradas) como CSV.
func (uc *MovementReportUseCase) ExportCSV(ctx context.Context, entries []*entity.Movement, w io.Writer, enc Encoding) error {
	rows, err := uc.Rows(ctx, entries)
	if err != nil {
		return err
	}
	return WriteCSV(w, rows, uc.loc, enc)
}

// ExportFilteredCSV filtra con los mismos parámetros del listado y escribe el CSV.
func (uc *MovementReportUseCase) ExportFilteredCSV(ctx context.Context, q dto.MovementReportQuery, w io.Writer, enc Encoding) error {
	f, err := ParseFilter(q, uc.loc)
	if err != nil {
		return err
	}
	entries, err := uc.FilterMovements(ctx, f)
	if err != nil {
		return err
	}
	return uc.ExportCSV(ctx, entries, w, enc)
}

// ExportFilteredPDF filtra y genera el PDF del reporte.
func (uc *MovementReportUseCase) ExportFilteredPDF(ctx context.Context, q dto.MovementReportQuery) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("reporte: generador PDF no configurado")
	}
	f, err := ParseFilter(q, uc.loc)
	if err != nil {
		return nil, err
	}
	entries, err := uc.FilterMovements(ctx, f)
	if err != nil {
		return nil, err
	}
	rows, err := uc.Rows(ctx, entries)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateMovementReport(ctx, pdfTitle(f), rows)
}

func pdfTitle(f Filter) string {
	start, end, kind := f.Echo()
	title := "Relatório de movimentações"
	switch {
	case start != "" && end != "":
		title += fmt.Sprintf(" (%s a %s)", start, end)
	case start != "":
		title += fmt.Sprintf(" (desde %s)", start)
	case end != "":
		title += fmt.Sprintf(" (até %s)", end)
	}
	if kind != "" {
		title += " - " + kind
	}
	return title
}
