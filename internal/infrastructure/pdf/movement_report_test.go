package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/pdf"
)

func TestGenerateMovementReport(t *testing.T) {
	g := pdf.NewMarotoReportGenerator(time.UTC)
	rows := []dto.MovementReportRow{
		{ID: 2, Date: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), ProductName: "Arroz", ProductCode: "SKU1", ProductCategory: "Grãos", Kind: "OUT", Quantity: 3},
		{ID: 1, Date: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), ProductName: "Arroz", ProductCode: "SKU1", ProductCategory: "Grãos", Kind: "IN", Quantity: 10},
	}

	out, err := g.GenerateMovementReport(context.Background(), "Relatório de movimentações", rows)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida es un PDF")
}

func TestGenerateMovementReport_Empty(t *testing.T) {
	out, err := pdf.NewMarotoReportGenerator(nil).GenerateMovementReport(context.Background(), "Vazio", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
