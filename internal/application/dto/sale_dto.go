package dto

import "time"

// SaleItemRequest línea de venta. Quantity en la unidad elegida; unit_id
// vacío = unidad base. Montos en centavos.
type SaleItemRequest struct {
	ProductID      string `json:"product_id"`
	UnitID         string `json:"unit_id,omitempty"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID string            `json:"customer_id,omitempty"`
	Type       string            `json:"type"` // CASH, CREDIT
	Items      []SaleItemRequest `json:"items"`
}

// SaleItemResponse línea de venta con la cantidad base resuelta.
type SaleItemResponse struct {
	ProductID      string `json:"product_id"`
	UnitID         string `json:"unit_id,omitempty"`
	Quantity       int64  `json:"quantity"`
	BaseQuantity   int64  `json:"base_quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

// SaleResponse venta completa.
type SaleResponse struct {
	ID          string             `json:"id"`
	BranchID    string             `json:"branch_id"`
	CustomerID  string             `json:"customer_id,omitempty"`
	Type        string             `json:"type"`
	Status      string             `json:"status"`
	TotalCents  int64              `json:"total_cents"`
	Items       []SaleItemResponse `json:"items"`
	CreatedAt   time.Time          `json:"created_at"`
	CancelledAt *time.Time         `json:"cancelled_at,omitempty"`
}
