package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// DateLayout formato de start_date / end_date.
const DateLayout = "2006-01-02"

// Filter filtro del reporte: límites de fecha de calendario inclusivos y tipo opcional.
type Filter struct {
	StartDate *time.Time // medianoche del día inicial en loc
	EndDate   *time.Time // medianoche del día final en loc
	Kind      *entity.MovementKind
}

// ParseFilter interpreta los parámetros de query. Fechas vacías = sin límite; tipo distinto de
// entrada/saida/IN/OUT se ignora. Una fecha mal formada es ErrInvalidInput.
func ParseFilter(q dto.MovementReportQuery, loc *time.Location) (Filter, error) {
	if loc == nil {
		loc = time.UTC
	}
	var f Filter
	if s := strings.TrimSpace(q.StartDate); s != "" {
		d, err := time.ParseInLocation(DateLayout, s, loc)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, s)
		}
		f.StartDate = &d
	}
	if s := strings.TrimSpace(q.EndDate); s != "" {
		d, err := time.ParseInLocation(DateLayout, s, loc)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, s)
		}
		f.EndDate = &d
	}
	if kind, ok := entity.ParseMovementKind(q.TipoMov); ok {
		f.Kind = &kind
	}
	return f, nil
}

// Repository traduce los días de calendario a instantes: [inicio del día inicial, inicio del día siguiente al final).
func (f Filter) Repository() repository.MovementFilter {
	var rf repository.MovementFilter
	if f.StartDate != nil {
		from := f.StartDate.UTC()
		rf.From = &from
	}
	if f.EndDate != nil {
		to := f.EndDate.AddDate(0, 0, 1).UTC()
		rf.To = &to
	}
	rf.Kind = f.Kind
	return rf
}

// Echo devuelve los filtros efectivamente aplicados, en el formato de entrada.
func (f Filter) Echo() (start, end, kind string) {
	if f.StartDate != nil {
		start = f.StartDate.Format(DateLayout)
	}
	if f.EndDate != nil {
		end = f.EndDate.Format(DateLayout)
	}
	if f.Kind != nil {
		kind = string(*f.Kind)
	}
	return start, end, kind
}
