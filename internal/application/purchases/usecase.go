package purchases

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

// PurchaseUseCase orquesta compras a proveedor: incrementa stock, persiste la
// cabecera y abre la cuenta CPP (crédito) o registra el egreso de caja
// (contado). Es el espejo de ventas con el signo invertido; la cancelación
// debe re-verificar el stock porque lo recibido pudo haberse vendido.
type PurchaseUseCase struct {
	txRunner     TxRunner
	resolver     *units.Resolver
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	purchaseRepo repository.PurchaseRepository
	log          *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	resolver *units.Resolver,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	purchaseRepo repository.PurchaseRepository,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		resolver:     resolver,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		purchaseRepo: purchaseRepo,
		log:          log,
	}
}

// CreatePurchase registra una compra. Orden fijo: stock primero, luego la
// cabecera, luego el efecto financiero (CPP o egreso de caja).
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, branchID, userID string, in dto.CreatePurchaseRequest) (*entity.Purchase, error) {
	if branchID == "" || userID == "" || in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.PurchaseTypeCash && in.Type != entity.PurchaseTypeCredit {
		return nil, domain.ErrInvalidInput
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	purchaseID := uuid.New().String()
	items := make([]entity.PurchaseItem, 0, len(in.Items))
	var total int64
	for _, it := range in.Items {
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if it.UnitCostCents < 0 {
			return nil, domain.ErrInvalidInput
		}
		baseQty, err := uc.resolver.Resolve(ctx, it.ProductID, it.UnitID, it.Quantity)
		if err != nil {
			return nil, err
		}
		subtotal := it.Quantity * it.UnitCostCents
		items = append(items, entity.PurchaseItem{
			ID:            uuid.New().String(),
			PurchaseID:    purchaseID,
			ProductID:     it.ProductID,
			UnitID:        it.UnitID,
			Quantity:      it.Quantity,
			BaseQuantity:  baseQty,
			UnitCostCents: it.UnitCostCents,
			SubtotalCents: subtotal,
		})
		total += subtotal
	}

	purchase := &entity.Purchase{
		ID:         purchaseID,
		BranchID:   branchID,
		SupplierID: in.SupplierID,
		Type:       in.Type,
		Status:     entity.PurchaseStatusCompleted,
		TotalCents: total,
		Items:      items,
		CreatedBy:  userID,
		CreatedAt:  now,
	}

	err = uc.txRunner.RunPurchase(ctx, func(
		stockRepo repository.StockRepository,
		purchaseRepo repository.PurchaseRepository,
		accountRepo repository.CreditAccountRepository,
		_ repository.CreditPaymentRepository,
		cashRepo repository.CashMovementRepository,
	) error {
		// 1) Incrementar stock (la fila se crea perezosamente si no existe).
		for _, item := range items {
			stock, err := stockRepo.GetForUpdate(item.ProductID, branchID)
			if err != nil {
				return err
			}
			stock.Quantity += item.BaseQuantity
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
		}
		// 2) Cabecera COMPLETED.
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		// 3) Efecto financiero.
		switch in.Type {
		case entity.PurchaseTypeCredit:
			account := &entity.CreditAccount{
				ID:             uuid.New().String(),
				Type:           entity.CreditTypeCPP,
				BranchID:       branchID,
				TransactionID:  purchaseID,
				CounterpartyID: in.SupplierID,
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
		case entity.PurchaseTypeCash:
			movement := &entity.CashMovement{
				ID:          uuid.New().String(),
				BranchID:    branchID,
				Type:        entity.CashTypeExpense,
				Category:    entity.CashCategoryPurchase,
				AmountCents: total,
				ReferenceID: purchaseID,
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

	metrics.PurchasesCreated.WithLabelValues(in.Type).Inc()
	return purchase, nil
}

// CancelPurchase revierte una compra. Re-verifica que quede stock suficiente
// para descontar lo recibido (pudo haberse vendido parcialmente:
// ErrStockInsufficientForReversal) y rechaza cancelar una CPP con abonos
// aplicados (ErrPaymentsApplied): el dinero ya pagado al proveedor no se
// puede revertir con un asiento local.
func (uc *PurchaseUseCase) CancelPurchase(ctx context.Context, purchaseID, userID string) error {
	if purchaseID == "" || userID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()

	err := uc.txRunner.RunPurchase(ctx, func(
		stockRepo repository.StockRepository,
		purchaseRepo repository.PurchaseRepository,
		accountRepo repository.CreditAccountRepository,
		paymentRepo repository.CreditPaymentRepository,
		cashRepo repository.CashMovementRepository,
	) error {
		purchase, err := purchaseRepo.GetByID(purchaseID)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		if purchase.Status == entity.PurchaseStatusCancelled {
			return domain.ErrAlreadyCancelled
		}

		// 1) Verificaciones antes de cualquier escritura: abonos sobre la
		// CPP y stock suficiente en TODAS las líneas.
		account, err := accountRepo.GetByTransaction(purchaseID)
		if err != nil {
			return err
		}
		if account != nil {
			paid, err := paymentRepo.CountByAccount(account.ID)
			if err != nil {
				return err
			}
			if paid > 0 || account.PaidCents > 0 {
				return domain.ErrPaymentsApplied
			}
		}
		stocks := make([]*entity.Stock, len(purchase.Items))
		for i, item := range purchase.Items {
			stock, err := stockRepo.GetForUpdate(item.ProductID, purchase.BranchID)
			if err != nil {
				return err
			}
			if stock.Quantity < item.BaseQuantity {
				return domain.ErrStockInsufficientForReversal
			}
			stocks[i] = stock
		}

		// 2) Descontar lo recibido.
		for i, item := range purchase.Items {
			stocks[i].Quantity -= item.BaseQuantity
			stocks[i].UpdatedAt = now
			if err := stockRepo.Upsert(stocks[i]); err != nil {
				return err
			}
		}

		// 3) Revertir el efecto financiero.
		if account != nil {
			if err := accountRepo.Delete(account.ID); err != nil {
				return err
			}
		}
		if purchase.Type == entity.PurchaseTypeCash {
			original, err := cashRepo.GetByReference(purchaseID)
			if err != nil {
				return err
			}
			if original == nil {
				uc.log.Error().
					Str("purchase_id", purchaseID).
					Str("branch_id", purchase.BranchID).
					Str("attempted", "compensating cash movement").
					Msg("compra CASH sin movimiento de caja registrado")
				metrics.LedgerInconsistencies.Inc()
				return domain.ErrInconsistentLedger
			}
			compensation := &entity.CashMovement{
				ID:          uuid.New().String(),
				BranchID:    purchase.BranchID,
				Type:        entity.CashTypeIncome,
				Category:    entity.CashCategoryAdjustment,
				AmountCents: purchase.TotalCents,
				ReferenceID: purchaseID,
				Notes:       "reverso de compra " + purchaseID + " (movimiento " + original.ID + ")",
				CreatedBy:   userID,
				CreatedAt:   now,
			}
			if err := cashRepo.Create(compensation); err != nil {
				return err
			}
		}

		return purchaseRepo.UpdateStatus(purchaseID, entity.PurchaseStatusCancelled, userID)
	})
	if err != nil {
		return err
	}

	metrics.PurchasesCancelled.Inc()
	return nil
}

// GetByID devuelve una compra por ID.
func (uc *PurchaseUseCase) GetByID(id string) (*entity.Purchase, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	return purchase, nil
}

// ListByBranch lista compras de una sucursal con paginación.
func (uc *PurchaseUseCase) ListByBranch(branchID string, limit, offset int) ([]*entity.Purchase, error) {
	return uc.purchaseRepo.ListByBranch(branchID, limit, offset)
}
