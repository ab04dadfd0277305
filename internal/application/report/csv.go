package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
)

// Datos de la descarga CSV.
const (
	CSVContentType = "text/csv"
	CSVFilename    = "relatorio_movimentacoes.csv"
	CSVDateLayout  = "2006-01-02 15:04:05"
)

// CSVHeader encabezado fijo del CSV.
var CSVHeader = []string{"ID", "Date", "Product", "Code", "Category", "Kind", "Quantity"}

// Encoding codificación de salida del CSV.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "windows-1252" // planillas que no detectan UTF-8
)

// ParseEncoding acepta "latin1", "windows-1252", "cp1252"; cualquier otro valor es UTF-8.
func ParseEncoding(s string) Encoding {
	switch s {
	case "latin1", "windows-1252", "cp1252":
		return EncodingLatin1
	}
	return EncodingUTF8
}

// WriteCSV escribe encabezado + una fila por entrada, en el orden recibido. Fechas en loc.
func WriteCSV(w io.Writer, rows []dto.MovementReportRow, loc *time.Location, enc Encoding) error {
	if loc == nil {
		loc = time.UTC
	}
	var tw *transform.Writer
	if enc == EncodingLatin1 {
		// Los caracteres sin equivalente en Windows-1252 se sustituyen en lugar de fallar.
		tw = transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
		w = tw
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("csv: encabezado: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.Date.In(loc).Format(CSVDateLayout),
			r.ProductName,
			r.ProductCode,
			r.ProductCategory,
			r.Kind,
			strconv.Itoa(r.Quantity),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv: fila %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return fmt.Errorf("csv: codificación: %w", err)
		}
	}
	return nil
}
