package dto

import "time"

// CashMovementResponse una entrada del libro de caja.
type CashMovementResponse struct {
	ID          string    `json:"id"`
	BranchID    string    `json:"branch_id"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	ReferenceID string    `json:"reference_id,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CashBalanceResponse saldo de caja de una sucursal (suma con signo).
type CashBalanceResponse struct {
	BranchID     string `json:"branch_id"`
	BalanceCents int64  `json:"balance_cents"`
}
