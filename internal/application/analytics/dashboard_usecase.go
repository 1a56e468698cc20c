// Package analytics contiene los casos de uso de reportes: ventas por semana y
// resumen del dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

const dashboardLowStock = 10 // productos en el widget de stock bajo

// DashboardUseCase genera el resumen de conteos y stock bajo.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y StockService.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	stock         *inventory.StockService
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, stock *inventory.StockService) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, stock: stock}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo:
//  1. CountClients
//  2. CountProducts
//  3. CountOrders
//  4. ListLowStock(10)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countResult struct {
		n   int
		err error
	}
	type lowStockResult struct {
		items []dto.LowStockProductDTO
		err   error
	}

	clientsCh := make(chan countResult, 1)
	productsCh := make(chan countResult, 1)
	ordersCh := make(chan countResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountClients(ctx)
		clientsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountOrders(ctx)
		ordersCh <- countResult{n, err}
	}()
	go func() {
		items, err := uc.stock.ListLowStock(ctx, dashboardLowStock)
		lowCh <- lowStockResult{items, err}
	}()

	clients := <-clientsCh
	products := <-productsCh
	orders := <-ordersCh
	low := <-lowCh

	if clients.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", clients.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes: %w", orders.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	return &dto.DashboardSummaryDTO{
		TotalClients:  clients.n,
		TotalProducts: products.n,
		TotalOrders:   orders.n,
		LowStock:      low.items,
	}, nil
}
