package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/report"
)

// ReportHandler reporte de movimientos y sus exportaciones (protegido).
type ReportHandler struct {
	uc *report.MovementReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.MovementReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func parseReportQuery(c *fiber.Ctx) (dto.MovementReportQuery, error) {
	var q dto.MovementReportQuery
	err := c.QueryParser(&q)
	return q, err
}

// Movements godoc
// @Summary      Reporte de movimientos filtrado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive, día completo)"
// @Param        tipo_mov    query  string  false  "entrada | saida"
// @Success      200  {object}  dto.MovementReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	q, err := parseReportQuery(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.uc.Report(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar movimientos filtrados a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        tipo_mov    query  string  false  "entrada | saida"
// @Param        encoding    query  string  false  "utf-8 (default) | latin1"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements/export [get]
func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	q, err := parseReportQuery(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	enc := report.ParseEncoding(c.Query("encoding"))

	// Se arma completo en memoria: un error a mitad de camino todavía puede responder JSON.
	var buf bytes.Buffer
	if err := h.uc.ExportFilteredCSV(c.UserContext(), q, &buf, enc); err != nil {
		return writeError(c, err)
	}

	contentType := report.CSVContentType
	if enc == report.EncodingLatin1 {
		contentType += "; charset=windows-1252"
	} else {
		contentType += "; charset=utf-8"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment;filename=%s", report.CSVFilename))
	return c.Send(buf.Bytes())
}

// ExportPDF godoc
// @Summary      Exportar movimientos filtrados a PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        tipo_mov    query  string  false  "entrada | saida"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	q, err := parseReportQuery(c)
	if err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	pdfBytes, err := h.uc.ExportFilteredPDF(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment;filename=%s", report.PDFFilename))
	return c.Send(pdfBytes)
}
