// Package pdf genera el reporte de movimientos de estoque en PDF (A4) con Maroto v2.
//
// Layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO + filtros aplicados        │  Fecha de emisión       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Fecha | Producto | Código | Categoría | Tipo | Cant │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: entradas / salidas / saldo                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/report"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

var _ report.PDFGenerator = (*MarotoReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIn      = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorOut     = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	loc *time.Location
	now func() time.Time
}

// NewMarotoReportGenerator construye el generador; las fechas se imprimen en loc.
func NewMarotoReportGenerator(loc *time.Location) *MarotoReportGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &MarotoReportGenerator{loc: loc, now: time.Now}
}

// GenerateMovementReport arma el documento con las filas en el orden recibido y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateMovementReport(_ context.Context, title string, rows []dto.MovementReportRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(title, len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	if len(rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Nenhuma movimentação no período.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}
	for _, r := range rows {
		m.AddRows(g.detailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReportGenerator) headerRow(title string, count int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d movimentações", count), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Emitido em "+g.now().In(g.loc).Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("ID", 1, align.Left),
		h("Data", 2, align.Left),
		h("Produto", 3, align.Left),
		h("Código", 2, align.Left),
		h("Categoria", 2, align.Left),
		h("Tipo", 1, align.Center),
		h("Qtd.", 1, align.Right),
	)
}

func (g *MarotoReportGenerator) detailRow(r dto.MovementReportRow) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	kindColor := colorIn
	if r.Kind == string(entity.MovementOUT) {
		kindColor = colorOut
	}
	return row.New(6).Add(
		cell(strconv.FormatInt(r.ID, 10), 1, align.Left),
		cell(r.Date.In(g.loc).Format(report.CSVDateLayout), 2, align.Left),
		cell(r.ProductName, 3, align.Left),
		cell(r.ProductCode, 2, align.Left),
		cell(r.ProductCategory, 2, align.Left),
		col.New(1).Add(text.New(r.Kind, props.Text{Size: 7.5, Style: fontstyle.Bold, Align: align.Center, Top: 1, Color: kindColor})),
		cell(strconv.Itoa(r.Quantity), 1, align.Right),
	)
}

// totalsRow suma unidades por tipo; el saldo es entradas - salidas.
func totalsRow(rows []dto.MovementReportRow) core.Row {
	var in, out int
	for _, r := range rows {
		if r.Kind == string(entity.MovementOUT) {
			out += r.Quantity
		} else {
			in += r.Quantity
		}
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(label("Entradas:"), label("Saídas:"), label("Saldo:")),
		col.New(3).Add(value(strconv.Itoa(in)), value(strconv.Itoa(out)), value(strconv.Itoa(in-out))),
	)
}
