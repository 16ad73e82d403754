package transfers

import (
	"context"

	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

// TxRunner ejecuta una transición del traslado dentro de una transacción de
// BD: el cambio de estado y las mutaciones de stock que conlleva (descuento
// al despachar, abono al recibir, restauración al cancelar) se confirman o
// revierten juntos.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error) error
}
