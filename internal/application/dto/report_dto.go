package dto

import "time"

// MovementReportQuery parámetros de query del reporte (formato de fecha YYYY-MM-DD).
type MovementReportQuery struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	TipoMov   string `query:"tipo_mov"`
}

// MovementReportRow fila del reporte con los datos del producto desnormalizados.
type MovementReportRow struct {
	ID              int64     `json:"id"`
	Date            time.Time `json:"date"`
	ProductID       int64     `json:"product_id"`
	ProductName     string    `json:"product_name"`
	ProductCode     string    `json:"product_code"`
	ProductCategory string    `json:"product_category"`
	Kind            string    `json:"kind"`
	Quantity        int       `json:"quantity"`
}

// MovementReportResponse respuesta de GET /api/reports/movements; repite los filtros aplicados.
type MovementReportResponse struct {
	StartDate string              `json:"start_date,omitempty"`
	EndDate   string              `json:"end_date,omitempty"`
	Kind      string              `json:"kind,omitempty"`
	Items     []MovementReportRow `json:"items"`
	Total     int                 `json:"total"`
}
