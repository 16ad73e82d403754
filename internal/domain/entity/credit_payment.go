package entity

import "time"

// CreditPayment es un abono append-only contra una cuenta de crédito. La suma
// de abonos de una cuenta nunca supera su TotalCents.
type CreditPayment struct {
	ID              string
	CreditAccountID string
	AmountCents     int64
	Method          string // efectivo, transferencia, etc.
	Notes           string
	CreatedBy       string
	CreatedAt       time.Time
}
