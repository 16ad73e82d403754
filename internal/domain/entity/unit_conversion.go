package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de unidad registrables por producto.
const (
	UnitTypeBase     = "BASE"
	UnitTypePurchase = "PURCHASE"
	UnitTypeSale     = "SALE"
)

// UnitConversion registra una unidad alternativa de compra/venta para un
// producto y su factor hacia la unidad base. Una unidad BASE tiene factor 1.
// El factor puede ser fraccionario (ej. 0.001), pero cantidad×factor debe
// dar un entero de unidades base.
type UnitConversion struct {
	ID        string
	ProductID string
	UnitID    string // identificador de la unidad (ej. "caja-12", "docena")
	Name      string
	UnitType  string // BASE, PURCHASE, SALE
	Factor    decimal.Decimal
	CreatedAt time.Time
}
