package repository

import "github.com/jpabloc/gestion-comercial/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas (cabecera +
// líneas). La cabecera es inmutable salvo el estado y los campos de
// cancelación.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	UpdateStatus(id, status, cancelledBy string) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.Sale, error)
}
