package entity

import "time"

// Estados y tipos de compra.
const (
	PurchaseStatusCompleted = "COMPLETED"
	PurchaseStatusCancelled = "CANCELLED"

	PurchaseTypeCash   = "CASH"
	PurchaseTypeCredit = "CREDIT"
)

// Purchase es la cabecera inmutable de una compra a proveedor más su estado.
type Purchase struct {
	ID          string
	BranchID    string
	SupplierID  string
	Type        string // CASH, CREDIT
	Status      string // COMPLETED, CANCELLED
	TotalCents  int64
	Items       []PurchaseItem
	CreatedBy   string
	CreatedAt   time.Time
	CancelledBy string
	CancelledAt *time.Time
}

// PurchaseItem es una línea de compra; BaseQuantity ya resuelta en unidades
// base (misma regla que SaleItem).
type PurchaseItem struct {
	ID            string
	PurchaseID    string
	ProductID     string
	UnitID        string
	Quantity      int64
	BaseQuantity  int64
	UnitCostCents int64
	SubtotalCents int64 // Quantity × UnitCostCents
}
