package sales

import (
	"context"

	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del motor de ventas:
// stock, cabecera, cuenta de crédito, deuda del cliente y caja se confirman
// o revierten juntos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		saleRepo repository.SaleRepository,
		accountRepo repository.CreditAccountRepository,
		cashRepo repository.CashMovementRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
