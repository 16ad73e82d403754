package entity

import "time"

// Customer representa un cliente. CurrentDebtCents refleja la suma de los
// saldos abiertos de sus cuentas CXC; solo lo mutan venta a crédito,
// abonos y cancelaciones, nunca updates arbitrarios.
type Customer struct {
	ID               string
	Name             string
	TaxID            string // NIT o cédula
	Email            string
	Phone            string
	Address          string
	CurrentDebtCents int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
