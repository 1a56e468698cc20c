package entity

import "time"

// Client representa un cliente del negocio (órdenes de servicio y ventas).
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Document  string // documento de identidad o fiscal
	Address   string
	City      string
	State     string
	ZipCode   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
