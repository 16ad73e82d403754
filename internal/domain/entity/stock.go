package entity

import "time"

// Stock representa la existencia de un producto en una sucursal (par único
// producto+sucursal). Quantity está en unidades base y nunca queda negativa
// después de una operación confirmada; toda mutación que la llevaría bajo
// cero debe rechazarse antes de escribir.
type Stock struct {
	ProductID string
	BranchID  string
	Quantity  int64
	MinStock  int64
	MaxStock  int64
	UpdatedAt time.Time
}
