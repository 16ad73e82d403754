package usecase

import (
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

// CashUseCase consultas de solo lectura sobre el libro de caja. Las
// escrituras son exclusivas de los motores de venta, compra y abono.
type CashUseCase struct {
	repo repository.CashMovementRepository
}

// NewCashUseCase construye el caso de uso con el puerto del libro de caja.
func NewCashUseCase(repo repository.CashMovementRepository) *CashUseCase {
	return &CashUseCase{repo: repo}
}

// ListByBranch lista movimientos de una sucursal con filtros.
func (uc *CashUseCase) ListByBranch(branchID string, filters repository.CashMovementFilters) ([]*entity.CashMovement, error) {
	return uc.repo.ListByBranch(branchID, filters)
}

// Balance devuelve el saldo de caja de la sucursal: suma con signo de todos
// sus movimientos.
func (uc *CashUseCase) Balance(branchID string) (int64, error) {
	return uc.repo.BalanceByBranch(branchID)
}
