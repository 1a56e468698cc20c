package entity

import "strings"

// OrderStatus estado de una orden de servicio.
type OrderStatus string

// Estados del ciclo de vida de Order.
const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// OrderStatuses devuelve los estados válidos en orden de ciclo de vida.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

// ParseOrderStatus convierte una etiqueta (sin distinguir mayúsculas) en OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	label := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range orderStatuses {
		if st == label {
			return st, true
		}
	}
	return "", false
}

// IsCancelled indica si el estado es terminal-cancelado (stock devuelto).
func (s OrderStatus) IsCancelled() bool {
	return s == OrderStatusCancelled
}

// HoldsStock indica si en este estado la orden mantiene reservado el stock de sus ítems.
func (s OrderStatus) HoldsStock() bool {
	return s != OrderStatusCancelled
}
