package repository

import "github.com/jpabloc/gestion-comercial/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar stock por
// producto+sucursal. Las filas se crean perezosamente: Get devuelve una fila
// en cero si el par aún no existe. Usado dentro de transacciones para
// garantizar consistencia.
type StockRepository interface {
	Get(productID, branchID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, branchID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.Stock, error)
}
