package entity

import "time"

// Estados y tipos de venta.
const (
	SaleStatusActive    = "ACTIVE"
	SaleStatusCancelled = "CANCELLED"

	SaleTypeCash   = "CASH"
	SaleTypeCredit = "CREDIT"
)

// Sale es la cabecera inmutable de una venta más su estado. La cancelación
// no borra el registro: aplica escrituras compensatorias y marca CANCELLED.
type Sale struct {
	ID          string
	BranchID    string
	CustomerID  string // vacío en venta de contado sin cliente registrado
	Type        string // CASH, CREDIT
	Status      string // ACTIVE, CANCELLED
	TotalCents  int64
	Items       []SaleItem
	CreatedBy   string
	CreatedAt   time.Time
	CancelledBy string
	CancelledAt *time.Time
}

// SaleItem es una línea de venta. Quantity está en la unidad elegida (UnitID
// vacío = unidad base) y BaseQuantity es la cantidad ya resuelta en unidades
// base; la reversión usa siempre BaseQuantity tal como quedó persistida, no
// una re-resolución (las definiciones de unidad pueden cambiar).
type SaleItem struct {
	ID             string
	SaleID         string
	ProductID      string
	UnitID         string
	Quantity       int64
	BaseQuantity   int64
	UnitPriceCents int64
	SubtotalCents  int64 // Quantity × UnitPriceCents
}
