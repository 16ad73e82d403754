package entity

import "time"

// Branch representa una sucursal (punto de venta o bodega principal).
type Branch struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
