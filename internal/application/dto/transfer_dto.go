package dto

import "time"

// TransferItemRequest línea de traslado (cantidades en unidades base).
type TransferItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateTransferRequest body para POST /api/transfers. El estado inicial se
// deriva del tipo: REQUEST nace REQUESTED, SEND nace PENDING.
type CreateTransferRequest struct {
	FromBranchID string                `json:"from_branch_id"`
	ToBranchID   string                `json:"to_branch_id"`
	Type         string                `json:"type"` // REQUEST, SEND
	Items        []TransferItemRequest `json:"items"`
	Notes        string                `json:"notes,omitempty"`
}

// TransferResponse traslado completo con su auditoría de pasos.
type TransferResponse struct {
	ID           string                `json:"id"`
	FromBranchID string                `json:"from_branch_id"`
	ToBranchID   string                `json:"to_branch_id"`
	Type         string                `json:"type"`
	Status       string                `json:"status"`
	Items        []TransferItemRequest `json:"items"`
	Notes        string                `json:"notes,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	ApprovedAt   *time.Time            `json:"approved_at,omitempty"`
	ShippedAt    *time.Time            `json:"shipped_at,omitempty"`
	CompletedAt  *time.Time            `json:"completed_at,omitempty"`
	CancelledAt  *time.Time            `json:"cancelled_at,omitempty"`
}
