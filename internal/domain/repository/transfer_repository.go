package repository

import "github.com/jpabloc/gestion-comercial/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados.
// UpdateStatus persiste el nuevo estado junto con los campos de auditoría
// del paso (approvedBy/shippedBy/completedBy/cancelledBy según aplique).
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	UpdateStatus(transfer *entity.Transfer) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.Transfer, error)
}
