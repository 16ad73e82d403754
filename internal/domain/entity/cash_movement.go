package entity

import "time"

// Tipos y categorías de movimiento de caja.
const (
	CashTypeIncome  = "INCOME"
	CashTypeExpense = "EXPENSE"

	CashCategorySale          = "SALE"
	CashCategoryPurchase      = "PURCHASE"
	CashCategoryCreditPayment = "CREDIT_PAYMENT"
	CashCategoryAdjustment    = "ADJUSTMENT"
)

// CashMovement es una entrada append-only del libro de caja de una sucursal.
// El saldo de la sucursal es la suma con signo de sus movimientos (INCOME
// suma, EXPENSE resta). Las cancelaciones registran un movimiento
// compensatorio que referencia al original; el libro nunca se reescribe.
type CashMovement struct {
	ID          string
	BranchID    string
	Type        string // INCOME, EXPENSE
	Category    string // SALE, PURCHASE, CREDIT_PAYMENT, ADJUSTMENT
	AmountCents int64
	ReferenceID string // venta, compra o cuenta de crédito de origen
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
}

// SignedAmount devuelve el monto con signo según el tipo.
func (m *CashMovement) SignedAmount() int64 {
	if m.Type == CashTypeExpense {
		return -m.AmountCents
	}
	return m.AmountCents
}
