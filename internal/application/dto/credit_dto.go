package dto

import "time"

// ApplyPaymentRequest body para POST /api/credits/:id/payments.
type ApplyPaymentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"` // efectivo, transferencia, etc.
	Notes       string `json:"notes,omitempty"`
}

// CreditAccountResponse estado de una cuenta de crédito.
type CreditAccountResponse struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"` // CXC, CPP
	BranchID       string    `json:"branch_id"`
	TransactionID  string    `json:"transaction_id"`
	CounterpartyID string    `json:"counterparty_id"`
	TotalCents     int64     `json:"total_cents"`
	PaidCents      int64     `json:"paid_cents"`
	BalanceCents   int64     `json:"balance_cents"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreditPaymentResponse un abono registrado.
type CreditPaymentResponse struct {
	ID          string    `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
