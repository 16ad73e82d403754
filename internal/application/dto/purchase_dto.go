package dto

import "time"

// PurchaseItemRequest línea de compra. Quantity en la unidad elegida.
type PurchaseItemRequest struct {
	ProductID     string `json:"product_id"`
	UnitID        string `json:"unit_id,omitempty"`
	Quantity      int64  `json:"quantity"`
	UnitCostCents int64  `json:"unit_cost_cents"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id"`
	Type       string                `json:"type"` // CASH, CREDIT
	Items      []PurchaseItemRequest `json:"items"`
}

// PurchaseItemResponse línea de compra con la cantidad base resuelta.
type PurchaseItemResponse struct {
	ProductID     string `json:"product_id"`
	UnitID        string `json:"unit_id,omitempty"`
	Quantity      int64  `json:"quantity"`
	BaseQuantity  int64  `json:"base_quantity"`
	UnitCostCents int64  `json:"unit_cost_cents"`
	SubtotalCents int64  `json:"subtotal_cents"`
}

// PurchaseResponse compra completa.
type PurchaseResponse struct {
	ID          string                 `json:"id"`
	BranchID    string                 `json:"branch_id"`
	SupplierID  string                 `json:"supplier_id"`
	Type        string                 `json:"type"`
	Status      string                 `json:"status"`
	TotalCents  int64                  `json:"total_cents"`
	Items       []PurchaseItemResponse `json:"items"`
	CreatedAt   time.Time              `json:"created_at"`
	CancelledAt *time.Time             `json:"cancelled_at,omitempty"`
}
