package repository

import (
	"time"

	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
)

// CashMovementFilters filtros de consulta del libro de caja.
type CashMovementFilters struct {
	Type     string
	Category string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// CashMovementRepository define el puerto del libro de caja por sucursal.
// Es append-only: no hay update ni delete; las correcciones se registran
// como movimientos compensatorios.
type CashMovementRepository interface {
	Create(movement *entity.CashMovement) error
	GetByReference(referenceID string) (*entity.CashMovement, error)
	ListByBranch(branchID string, filters CashMovementFilters) ([]*entity.CashMovement, error)
	// BalanceByBranch devuelve la suma con signo de todos los movimientos.
	BalanceByBranch(branchID string) (int64, error)
}
