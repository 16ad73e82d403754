package credit

import "github.com/jpabloc/gestion-comercial/internal/domain/entity"

// StatusFor calcula el estado de una cuenta de crédito a partir de lo pagado
// frente al total (servicio de dominio, función pura):
//
//	0 pagado            -> PENDIENTE
//	0 < pagado < total  -> PAGADO_PARCIAL
//	pagado >= total     -> PAGADO
func StatusFor(totalCents, paidCents int64) string {
	switch {
	case paidCents <= 0:
		return entity.CreditStatusPendiente
	case paidCents < totalCents:
		return entity.CreditStatusPagadoParcial
	default:
		return entity.CreditStatusPagado
	}
}

// Apply aplica un abono a la cuenta y recalcula saldo y estado. Balance se
// deriva siempre de Total − Paid; nunca se mantiene por separado.
func Apply(account *entity.CreditAccount, amountCents int64) {
	account.PaidCents += amountCents
	account.BalanceCents = account.TotalCents - account.PaidCents
	account.Status = StatusFor(account.TotalCents, account.PaidCents)
}
