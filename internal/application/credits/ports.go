package credits

import (
	"context"

	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

// TxRunner ejecuta un abono dentro de una transacción de BD: la cuenta se
// bloquea (FOR UPDATE), el abono se agrega, los montos se recalculan y la
// caja y la deuda del cliente se mueven en el mismo commit.
type TxRunner interface {
	RunCredit(ctx context.Context, fn func(
		accountRepo repository.CreditAccountRepository,
		paymentRepo repository.CreditPaymentRepository,
		cashRepo repository.CashMovementRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
