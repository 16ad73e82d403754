package entity

import "time"

// Product representa un producto o SKU del catálogo (multi-sucursal).
// Precios y costos en centavos (int64), nunca punto flotante.
// El stock se maneja por sucursal en Stock; la unidad base es la unidad
// canónica en la que se cuenta ese stock.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	CategoryID  string
	PriceCents  int64  // precio de venta por unidad base
	CostCents   int64  // último costo de compra por unidad base
	BaseUnit    string // nombre de la unidad base (ej. "unidad", "gramo")
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
