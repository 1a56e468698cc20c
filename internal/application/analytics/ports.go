package analytics

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
)

// WeeklySalesCache cache del reporte semanal. Get devuelve ok=false si no hay entrada.
type WeeklySalesCache interface {
	GetWeeklySales(ctx context.Context, key string) (buckets []dto.WeeklySalesBucketDTO, ok bool, err error)
	SetWeeklySales(ctx context.Context, key string, buckets []dto.WeeklySalesBucketDTO) error
}
