package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	CostCents   int64  `json:"cost_cents"`
	BaseUnit    string `json:"base_unit"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID         string    `json:"id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	CostCents  int64     `json:"cost_cents"`
	BaseUnit   string    `json:"base_unit"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// RegisterUnitRequest body para POST /api/products/:id/units.
type RegisterUnitRequest struct {
	UnitID   string          `json:"unit_id"`
	Name     string          `json:"name"`
	UnitType string          `json:"unit_type"` // BASE, PURCHASE, SALE
	Factor   decimal.Decimal `json:"factor"`
}

// CreateBranchRequest body para POST /api/branches.
type CreateBranchRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CustomerResponse cliente con su deuda vigente.
type CustomerResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	TaxID            string `json:"tax_id"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	CurrentDebtCents int64  `json:"current_debt_cents"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
