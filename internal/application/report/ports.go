package report

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
)

// PDFGenerator genera la representación PDF del reporte de movimientos.
type PDFGenerator interface {
	GenerateMovementReport(ctx context.Context, title string, rows []dto.MovementReportRow) ([]byte, error)
}
