package dto

import "github.com/shopspring/decimal"

// WeeklySalesBucketDTO una semana (lunes a domingo) del reporte de ventas.
type WeeklySalesBucketDTO struct {
	WeekStart string          `json:"weekStart"` // YYYY-MM-DD del lunes
	WeekLabel string          `json:"weekLabel"` // ej: "06 oct – 12 oct"
	Total     decimal.Decimal `json:"total"`     // redondeado a 2 decimales
	Count     int             `json:"count"`
}
