package repository

import "github.com/jpabloc/gestion-comercial/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para compras.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	UpdateStatus(id, status, cancelledBy string) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.Purchase, error)
}
