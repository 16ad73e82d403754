package purchases

import (
	"context"

	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El repositorio de abonos participa porque la
// cancelación de una CPP debe verificar que no existan abonos aplicados.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		purchaseRepo repository.PurchaseRepository,
		accountRepo repository.CreditAccountRepository,
		paymentRepo repository.CreditPaymentRepository,
		cashRepo repository.CashMovementRepository,
	) error) error
}
