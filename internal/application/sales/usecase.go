package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/application/units"
	"github.com/jpabloc/gestion-comercial/internal/domain"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
	"github.com/jpabloc/gestion-comercial/pkg/logger"
	"github.com/jpabloc/gestion-comercial/pkg/metrics"
)

// SaleUseCase orquesta ventas de forma transaccional: descuenta stock (con
// bloqueo de fila), persiste la cabecera y aplica el efecto financiero
// (cuenta CXC + deuda del cliente en crédito, movimiento de caja en
// contado). La cancelación aplica escrituras compensatorias en orden fijo.
type SaleUseCase struct {
	txRunner     TxRunner
	resolver     *units.Resolver
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	log          *logger.Logger
}

// NewSaleUseCase construye el caso de uso. saleRepo se usa solo para
// lecturas; las escrituras pasan por el TxRunner.
func NewSaleUseCase(
	txRunner TxRunner,
	resolver *units.Resolver,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		resolver:     resolver,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		log:          log,
	}
}

// CreateSale crea una venta. Orden de escritura fijo: stock primero, luego la
// cabecera, luego el efecto financiero. La verificación de stock es
// todo-o-nada: si una línea no alcanza, ninguna fila se muta.
func (uc *SaleUseCase) CreateSale(ctx context.Context, branchID, userID string, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if branchID == "" || userID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.SaleTypeCash && in.Type != entity.SaleTypeCredit {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.SaleTypeCredit && in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Validaciones de solo lectura fuera de la tx.
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	saleID := uuid.New().String()
	items := make([]entity.SaleItem, 0, len(in.Items))
	var total int64
	for _, it := range in.Items {
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		price := it.UnitPriceCents
		if price < 0 {
			return nil, domain.ErrInvalidInput
		}
		if price == 0 && it.UnitID == "" {
			price = product.PriceCents
		}
		// Resolver la cantidad base antes de cualquier mutación de stock;
		// queda persistida en la línea para la reversión.
		baseQty, err := uc.resolver.Resolve(ctx, it.ProductID, it.UnitID, it.Quantity)
		if err != nil {
			return nil, err
		}
		subtotal := it.Quantity * price
		items = append(items, entity.SaleItem{
			ID:             uuid.New().String(),
			SaleID:         saleID,
			ProductID:      it.ProductID,
			UnitID:         it.UnitID,
			Quantity:       it.Quantity,
			BaseQuantity:   baseQty,
			UnitPriceCents: price,
			SubtotalCents:  subtotal,
		})
		total += subtotal
	}

	sale := &entity.Sale{
		ID:         saleID,
		BranchID:   branchID,
		CustomerID: in.CustomerID,
		Type:       in.Type,
		Status:     entity.SaleStatusActive,
		TotalCents: total,
		Items:      items,
		CreatedBy:  userID,
		CreatedAt:  now,
	}

	err := uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		saleRepo repository.SaleRepository,
		accountRepo repository.CreditAccountRepository,
		cashRepo repository.CashMovementRepository,
		customerRepo repository.CustomerRepository,
	) error {
		// 1) Bloquear y verificar TODAS las filas de stock antes de escribir.
		stocks := make([]*entity.Stock, len(items))
		for i, item := range items {
			stock, err := stockRepo.GetForUpdate(item.ProductID, branchID)
			if err != nil {
				return err
			}
			if stock.Quantity < item.BaseQuantity {
				return domain.ErrInsufficientStock
			}
			stocks[i] = stock
		}
		// 2) Descontar stock (primero, para que un fallo posterior deje el
		// inventario correctamente reducido y auditable antes del rollback).
		for i, item := range items {
			stocks[i].Quantity -= item.BaseQuantity
			stocks[i].UpdatedAt = now
			if err := stockRepo.Upsert(stocks[i]); err != nil {
				return err
			}
		}
		// 3) Cabecera ACTIVE.
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		// 4) Efecto financiero según el tipo.
		switch in.Type {
		case entity.SaleTypeCredit:
			account := &entity.CreditAccount{
				ID:             uuid.New().String(),
				Type:           entity.CreditTypeCXC,
				BranchID:       branchID,
				TransactionID:  saleID,
				CounterpartyID: in.CustomerID,
				TotalCents:     total,
				PaidCents:      0,
				BalanceCents:   total,
				Status:         entity.CreditStatusPendiente,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := accountRepo.Create(account); err != nil {
				return err
			}
			if err := customerRepo.AdjustDebt(in.CustomerID, total); err != nil {
				return err
			}
		case entity.SaleTypeCash:
			movement := &entity.CashMovement{
				ID:          uuid.New().String(),
				BranchID:    branchID,
				Type:        entity.CashTypeIncome,
				Category:    entity.CashCategorySale,
				AmountCents: total,
				ReferenceID: saleID,
				CreatedBy:   userID,
				CreatedAt:   now,
			}
			if err := cashRepo.Create(movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SalesCreated.WithLabelValues(in.Type).Inc()
	return sale, nil
}

// CancelSale cancela una venta aplicando escrituras compensatorias: restaura
// el stock con la BaseQuantity persistida, elimina la cuenta CXC (bajando la
// deuda del cliente por el saldo abierto y reembolsando por caja lo ya
// abonado) y registra un movimiento compensatorio para ventas de contado.
// La cabecera queda CANCELLED; nunca se borra el registro financiero.
func (uc *SaleUseCase) CancelSale(ctx context.Context, saleID, userID string) error {
	if saleID == "" || userID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()

	err := uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		saleRepo repository.SaleRepository,
		accountRepo repository.CreditAccountRepository,
		cashRepo repository.CashMovementRepository,
		customerRepo repository.CustomerRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusCancelled {
			return domain.ErrAlreadyCancelled
		}

		// 1) Restaurar stock por línea con la cantidad base persistida.
		for _, item := range sale.Items {
			stock, err := stockRepo.GetForUpdate(item.ProductID, sale.BranchID)
			if err != nil {
				return err
			}
			stock.Quantity += item.BaseQuantity
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
		}

		// 2) Revertir el efecto financiero.
		account, err := accountRepo.GetByTransaction(saleID)
		if err != nil {
			return err
		}
		if account != nil {
			// La deuda vigente del cliente refleja solo el saldo abierto (se
			// bajó con cada abono), así que se descuenta el balance, no el
			// total. Lo ya abonado se reembolsa explícitamente por caja.
			if account.PaidCents > 0 {
				refund := &entity.CashMovement{
					ID:          uuid.New().String(),
					BranchID:    sale.BranchID,
					Type:        entity.CashTypeExpense,
					Category:    entity.CashCategoryAdjustment,
					AmountCents: account.PaidCents,
					ReferenceID: saleID,
					Notes:       "reembolso de abonos por cancelación de venta",
					CreatedBy:   userID,
					CreatedAt:   now,
				}
				if err := cashRepo.Create(refund); err != nil {
					return err
				}
			}
			if account.BalanceCents > 0 {
				if err := customerRepo.AdjustDebt(account.CounterpartyID, -account.BalanceCents); err != nil {
					return err
				}
			}
			if err := accountRepo.Delete(account.ID); err != nil {
				return err
			}
		}

		if sale.Type == entity.SaleTypeCash {
			original, err := cashRepo.GetByReference(saleID)
			if err != nil {
				return err
			}
			if original == nil {
				// Venta de contado sin movimiento de caja: contradicción que
				// requiere reconciliación manual, no un reintento.
				uc.log.Error().
					Str("sale_id", saleID).
					Str("branch_id", sale.BranchID).
					Str("attempted", "compensating cash movement").
					Msg("venta CASH sin movimiento de caja registrado")
				metrics.LedgerInconsistencies.Inc()
				return domain.ErrInconsistentLedger
			}
			compensation := &entity.CashMovement{
				ID:          uuid.New().String(),
				BranchID:    sale.BranchID,
				Type:        entity.CashTypeExpense,
				Category:    entity.CashCategoryAdjustment,
				AmountCents: sale.TotalCents,
				ReferenceID: saleID,
				Notes:       "reverso de venta " + saleID + " (movimiento " + original.ID + ")",
				CreatedBy:   userID,
				CreatedAt:   now,
			}
			if err := cashRepo.Create(compensation); err != nil {
				return err
			}
		}

		// 3) Marcar la cabecera al final: si algo falló antes, el rollback
		// deja la venta ACTIVE y el estado sigue siendo explicable.
		return saleRepo.UpdateStatus(saleID, entity.SaleStatusCancelled, userID)
	})
	if err != nil {
		return err
	}

	metrics.SalesCancelled.Inc()
	return nil
}

// GetByID devuelve una venta por ID (solo lectura, fuera de tx).
func (uc *SaleUseCase) GetByID(id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// ListByBranch lista ventas de una sucursal con paginación.
func (uc *SaleUseCase) ListByBranch(branchID string, limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.ListByBranch(branchID, limit, offset)
}
