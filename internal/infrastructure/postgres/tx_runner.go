package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
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

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// repositorios atados a esa tx. Commit si fn retorna nil; Rollback si no.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale transacción del motor de ventas: stock, cabecera, cuenta CXC,
// caja y deuda del cliente en un solo commit.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	saleRepo repository.SaleRepository,
	accountRepo repository.CreditAccountRepository,
	cashRepo repository.CashMovementRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewStockRepository(q),
			NewSaleRepository(q),
			NewCreditAccountRepository(q),
			NewCashMovementRepository(q),
			NewCustomerRepository(q),
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
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewStockRepository(q),
			NewPurchaseRepository(q),
			NewCreditAccountRepository(q),
			NewCreditPaymentRepository(q),
			NewCashMovementRepository(q),
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
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewCreditAccountRepository(q),
			NewCreditPaymentRepository(q),
			NewCashMovementRepository(q),
			NewCustomerRepository(q),
		)
	})
}

// RunTransfer transacción de transiciones de traslado.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewStockRepository(q),
			NewTransferRepository(q),
		)
	})
}
