package repository

import "github.com/jpabloc/gestion-comercial/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para clientes.
// AdjustDebt es la única vía para mover CurrentDebtCents (delta con signo);
// Update no toca la deuda.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByTaxID(taxID string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	AdjustDebt(id string, deltaCents int64) error
	List(limit, offset int) ([]*entity.Customer, error)
}
