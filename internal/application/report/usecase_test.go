package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/report"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/sqlite"
)

type fakePDF struct {
	title string
	rows  []dto.MovementReportRow
}

func (f *fakePDF) GenerateMovementReport(_ context.Context, title string, rows []dto.MovementReportRow) ([]byte, error) {
	f.title, f.rows = title, rows
	return []byte("%PDF-fake"), nil
}

type reportEnv struct {
	uc  *report.MovementReportUseCase
	pdf *fakePDF
	ids map[string]int64 // etiqueta → id de movimiento
}

// newReportEnv arma un libro con movimientos en fechas fijas alrededor de enero de 2024.
func newReportEnv(t *testing.T) reportEnv {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(sqlite.Options{Path: ":memory:", AutoMigrate: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	products := sqlite.NewProductRepository(db)
	movements := sqlite.NewMovementRepository(db)

	now := time.Now().UTC().Truncate(time.Microsecond)
	coffee := &entity.Product{Code: "CAF", Name: "Café, torrado", Category: "Bebidas", Price: decimal.RequireFromString("18.90"), StockQuantity: 100, ReorderThreshold: 5, CreatedAt: now, UpdatedAt: now}
	rice := &entity.Product{Code: "ARR", Name: "Arroz", Category: "Grãos", Price: decimal.RequireFromString("6.40"), StockQuantity: 100, ReorderThreshold: 5, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(ctx, coffee))
	require.NoError(t, products.Create(ctx, rice))

	at := func(s string) time.Time {
		ts, err := time.Parse(time.RFC3339, s)
		require.NoError(t, err)
		return ts.UTC()
	}
	seed := []struct {
		label   string
		product int64
		kind    entity.MovementKind
		qty     int
		at      time.Time
	}{
		{"dic-out", coffee.ID, entity.MovementOUT, 1, at("2023-12-31T23:59:59Z")},
		{"ene01-out", coffee.ID, entity.MovementOUT, 2, at("2024-01-01T00:00:00Z")},
		{"ene10-in", rice.ID, entity.MovementIN, 30, at("2024-01-10T08:00:00Z")},
		{"ene15-out", rice.ID, entity.MovementOUT, 4, at("2024-01-15T11:30:00Z")},
		{"ene31-out", coffee.ID, entity.MovementOUT, 3, at("2024-01-31T23:59:59Z")},
		{"feb-out", rice.ID, entity.MovementOUT, 5, at("2024-02-01T00:00:00Z")},
	}
	ids := make(map[string]int64, len(seed))
	for _, s := range seed {
		m := &entity.Movement{ProductID: s.product, Kind: s.kind, Quantity: s.qty, CreatedAt: s.at}
		require.NoError(t, movements.Create(ctx, m))
		ids[s.label] = m.ID
	}

	pdf := &fakePDF{}
	return reportEnv{
		uc:  report.NewMovementReportUseCase(movements, products, pdf, time.UTC),
		pdf: pdf,
		ids: ids,
	}
}

func TestReport_SalidasDeEnero(t *testing.T) {
	e := newReportEnv(t)

	res, err := e.uc.Report(context.Background(), dto.MovementReportQuery{StartDate: "2024-01-01", EndDate: "2024-01-31", TipoMov: "saida"})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", res.StartDate)
	assert.Equal(t, "2024-01-31", res.EndDate)
	assert.Equal(t, "OUT", res.Kind)
	require.Equal(t, 3, res.Total)

	got := []int64{res.Items[0].ID, res.Items[1].ID, res.Items[2].ID}
	assert.Equal(t, []int64{e.ids["ene31-out"], e.ids["ene15-out"], e.ids["ene01-out"]}, got, "más recientes primero")
	for _, row := range res.Items {
		assert.Equal(t, "OUT", row.Kind)
	}
	assert.Equal(t, "Arroz", res.Items[1].ProductName)
	assert.Equal(t, "ARR", res.Items[1].ProductCode)
	assert.Equal(t, "Grãos", res.Items[1].ProductCategory)
}

func TestReport_SinFiltros(t *testing.T) {
	e := newReportEnv(t)

	res, err := e.uc.Report(context.Background(), dto.MovementReportQuery{TipoMov: "qualquer"})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Total)
	assert.Empty(t, res.Kind)
	assert.Equal(t, e.ids["feb-out"], res.Items[0].ID)
	assert.Equal(t, e.ids["dic-out"], res.Items[5].ID)
}

func TestReport_FechaInvalida(t *testing.T) {
	e := newReportEnv(t)
	_, err := e.uc.Report(context.Background(), dto.MovementReportQuery{StartDate: "01/01/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReport_ZonaHorariaDelDia(t *testing.T) {
	e := newReportEnv(t)
	brt := time.FixedZone("BRT", -3*60*60)
	uc := report.NewMovementReportUseCase(nil, nil, nil, brt)
	assert.Equal(t, brt, uc.Location())

	// 31 de enero en BRT va de 03:00Z a 03:00Z del día siguiente
	f, err := report.ParseFilter(dto.MovementReportQuery{StartDate: "2024-01-31", EndDate: "2024-01-31"}, brt)
	require.NoError(t, err)
	entries, err := e.uc.FilterMovements(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, e.ids["feb-out"], entries[0].ID)
	assert.Equal(t, e.ids["ene31-out"], entries[1].ID)
}

func TestExportFilteredCSV_IdaYVuelta(t *testing.T) {
	ctx := context.Background()
	e := newReportEnv(t)
	q := dto.MovementReportQuery{StartDate: "2024-01-01", EndDate: "2024-01-31"}

	listed, err := e.uc.Report(ctx, q)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.uc.ExportFilteredCSV(ctx, q, &buf, report.EncodingUTF8))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, listed.Total+1)
	assert.Equal(t, report.CSVHeader, records[0])

	for i, rec := range records[1:] {
		row := listed.Items[i]
		id, err := strconv.ParseInt(rec[0], 10, 64)
		require.NoError(t, err)
		qty, err := strconv.Atoi(rec[6])
		require.NoError(t, err)
		assert.Equal(t, row.ID, id)
		assert.Equal(t, row.Quantity, qty)
		assert.Equal(t, row.ProductName, rec[2])
	}
	assert.Equal(t, "Café, torrado", records[1][2])
	assert.Equal(t, "2024-01-31 23:59:59", records[1][1])
}

func TestExportFilteredPDF(t *testing.T) {
	e := newReportEnv(t)

	out, err := e.uc.ExportFilteredPDF(context.Background(), dto.MovementReportQuery{StartDate: "2024-01-01", EndDate: "2024-01-31", TipoMov: "entrada"})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, "Relatório de movimentações (2024-01-01 a 2024-01-31) - IN", e.pdf.title)
	require.Len(t, e.pdf.rows, 1)
	assert.Equal(t, 30, e.pdf.rows[0].Quantity)

	noPDF := report.NewMovementReportUseCase(nil, nil, nil, nil)
	_, err = noPDF.ExportFilteredPDF(context.Background(), dto.MovementReportQuery{})
	assert.Error(t, err)
}

func TestRows_ProductoInexistente(t *testing.T) {
	e := newReportEnv(t)
	_, err := e.uc.Rows(context.Background(), []*entity.Movement{{ID: 99, ProductID: 12345, Kind: entity.MovementIN, Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
