package sales

import (
	"context"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// ListLimit máximo de ventas devueltas por el listado.
const ListLimit = 200

const dateLayout = "2006-01-02"

// QueryUseCase lecturas de ventas.
type QueryUseCase struct {
	saleRepo repository.SaleRepository
	loc      *time.Location
}

// NewQueryUseCase construye el caso de uso. loc es la zona horaria de los filtros de fecha (nil = UTC).
func NewQueryUseCase(saleRepo repository.SaleRepository, loc *time.Location) *QueryUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &QueryUseCase{saleRepo: saleRepo, loc: loc}
}

// GetByID obtiene una venta con cliente e ítems.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceError("leer venta", err)
	}
	if sale == nil {
		return nil, domain.NewNotFoundError("sale", id)
	}
	return dto.NewSaleResponse(sale), nil
}

// List devuelve las ventas más recientes primero (máx. 200). start y end son fechas
// YYYY-MM-DD opcionales; end incluye el día completo (hasta 23:59:59.999).
func (uc *QueryUseCase) List(ctx context.Context, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	filter := repository.SaleFilter{Limit: ListLimit}
	if in.Start != "" {
		start, err := time.ParseInLocation(dateLayout, in.Start, uc.loc)
		if err != nil {
			return nil, domain.NewValidationError("start", "fecha inválida, formato YYYY-MM-DD")
		}
		filter.Start = &start
	}
	if in.End != "" {
		end, err := time.ParseInLocation(dateLayout, in.End, uc.loc)
		if err != nil {
			return nil, domain.NewValidationError("end", "fecha inválida, formato YYYY-MM-DD")
		}
		// AddDate respeta los días de 23 o 25 horas por cambio de horario.
		end = end.AddDate(0, 0, 1).Add(-time.Millisecond)
		filter.End = &end
	}
	if filter.Start != nil && filter.End != nil && filter.End.Before(*filter.Start) {
		return nil, domain.NewValidationError("end", "end debe ser posterior a start")
	}
	list, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, domain.NewPersistenceError("listar ventas", err)
	}
	out := &dto.SaleListResponse{Items: make([]dto.SaleResponse, 0, len(list))}
	for _, s := range list {
		out.Items = append(out.Items, *dto.NewSaleResponse(s))
	}
	return out, nil
}
