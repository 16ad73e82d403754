package entity

import "time"

// Tipos y estados de cuenta de crédito.
const (
	CreditTypeCXC = "CXC" // cuenta por cobrar (venta a crédito, cliente)
	CreditTypeCPP = "CPP" // cuenta por pagar (compra a crédito, proveedor)

	CreditStatusPendiente     = "PENDIENTE"
	CreditStatusPagadoParcial = "PAGADO_PARCIAL"
	CreditStatusPagado        = "PAGADO"
)

// CreditAccount es una cuenta de crédito atada a una venta (CXC+cliente) o a
// una compra (CPP+proveedor). BalanceCents se recalcula siempre como
// TotalCents − PaidCents, nunca se mantiene de forma independiente, y Status
// es función pura de (PaidCents, TotalCents).
type CreditAccount struct {
	ID             string
	Type           string // CXC, CPP
	BranchID       string
	TransactionID  string // ID de la venta o compra de origen
	CounterpartyID string // cliente (CXC) o proveedor (CPP)
	TotalCents     int64
	PaidCents      int64
	BalanceCents   int64
	Status         string // PENDIENTE, PAGADO_PARCIAL, PAGADO
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
