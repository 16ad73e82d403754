package usecase

import (
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

// StockUseCase consultas de solo lectura sobre existencias. Las escrituras
// de stock son exclusivas de ventas, compras y traslados, que corren dentro
// de una transacción.
type StockUseCase struct {
	repo repository.StockRepository
}

// NewStockUseCase construye el caso de uso con el puerto de stock.
func NewStockUseCase(repo repository.StockRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// Get devuelve la existencia de un producto en una sucursal (fila en cero si
// el par aún no registra movimientos).
func (uc *StockUseCase) Get(productID, branchID string) (*entity.Stock, error) {
	return uc.repo.Get(productID, branchID)
}

// ListByBranch lista las existencias de una sucursal.
func (uc *StockUseCase) ListByBranch(branchID string, limit, offset int) ([]*entity.Stock, error) {
	return uc.repo.ListByBranch(branchID, limit, offset)
}
