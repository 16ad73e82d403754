package entity

import "time"

// Supplier representa un proveedor. No lleva contador de deuda: la exposición
// con el proveedor se consulta por las cuentas CPP abiertas.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
