package memory

import (
	"context"
	"sync"

	"github.com/jpabloc/gestion-comercial/internal/application/credits"
	"github.com/jpabloc/gestion-comercial/internal/application/purchases"
	"github.com/jpabloc/gestion-comercial/internal/application/sales"
	"github.com/jpabloc/gestion-comercial/internal/application/transfers"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

// Ensure TxRunner implementa los runners de cada motor.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ purchases.TxRunner = (*TxRunner)(nil)
var _ credits.TxRunner = (*TxRunner)(nil)
var _ transfers.TxRunner = (*TxRunner)(nil)

// TxRunner emula transacciones sobre el Store: toma un snapshot antes de
// ejecutar fn y lo restaura si fn falla. Las transacciones se serializan con
// txMu, así que los GetForUpdate en memoria no necesitan bloqueo de fila.
type TxRunner struct {
	s    *Store
	txMu sync.Mutex
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) run(fn func() error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.s.mu.Lock()
	snap := r.s.snapshot()
	r.s.mu.Unlock()

	if err := fn(); err != nil {
		r.s.mu.Lock()
		r.s.restore(snap)
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// RunSale transacción del motor de ventas.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	saleRepo repository.SaleRepository,
	accountRepo repository.CreditAccountRepository,
	cashRepo repository.CashMovementRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(func() error {
		return fn(
			NewStockRepository(r.s),
			NewSaleRepository(r.s),
			NewCreditAccountRepository(r.s),
			NewCashMovementRepository(r.s),
			NewCustomerRepository(r.s),
		)
	})
}

// RunPurchase transacción del motor de compras.
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	purchaseRepo repository.PurchaseRepository,
	accountRepo repository.CreditAccountRepository,
	paymentRepo repository.CreditPaymentRepository,
	cashRepo repository.CashMovementRepository,
) error) error {
	return r.run(func() error {
		return fn(
			NewStockRepository(r.s),
			NewPurchaseRepository(r.s),
			NewCreditAccountRepository(r.s),
			NewCreditPaymentRepository(r.s),
			NewCashMovementRepository(r.s),
		)
	})
}

// RunCredit transacción de abonos a cuentas de crédito.
func (r *TxRunner) RunCredit(ctx context.Context, fn func(
	accountRepo repository.CreditAccountRepository,
	paymentRepo repository.CreditPaymentRepository,
	cashRepo repository.CashMovementRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(func() error {
		return fn(
			NewCreditAccountRepository(r.s),
			NewCreditPaymentRepository(r.s),
			NewCashMovementRepository(r.s),
			NewCustomerRepository(r.s),
		)
	})
}

// RunTransfer transacción de transiciones de traslado.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
) error) error {
	return r.run(func() error {
		return fn(
			NewStockRepository(r.s),
			NewTransferRepository(r.s),
		)
	})
}
