package transfers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/domain"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
	"github.com/jpabloc/gestion-comercial/pkg/metrics"
)

// TransferUseCase dirige la máquina de estados de traslados entre
// sucursales. El stock de origen se descuenta al despachar (la mercancía
// viaja sin contar en ninguna sucursal) y el de destino se abona al
// confirmar recepción; la cancelación desde IN_TRANSIT restaura al origen
// exactamente lo descontado: las unidades nunca se fabrican ni se pierden.
type TransferUseCase struct {
	txRunner     TxRunner
	branchRepo   repository.BranchRepository
	productRepo  repository.ProductRepository
	transferRepo repository.TransferRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	transferRepo repository.TransferRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:     txRunner,
		branchRepo:   branchRepo,
		productRepo:  productRepo,
		transferRepo: transferRepo,
	}
}

// Create registra un traslado. El estado inicial se deriva del tipo con el
// constructor de dominio: REQUEST nace REQUESTED, SEND nace PENDING, nunca
// por defaults permisivos.
func (uc *TransferUseCase) Create(ctx context.Context, userID string, in dto.CreateTransferRequest) (*entity.Transfer, error) {
	if userID == "" || in.FromBranchID == "" || in.ToBranchID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromBranchID == in.ToBranchID {
		return nil, domain.ErrInvalidInput
	}
	initial := entity.InitialTransferStatus(in.Type)
	if initial == "" {
		return nil, domain.ErrInvalidInput
	}

	from, err := uc.branchRepo.GetByID(in.FromBranchID)
	if err != nil {
		return nil, err
	}
	to, err := uc.branchRepo.GetByID(in.ToBranchID)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	transferID := uuid.New().String()
	items := make([]entity.TransferItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.TransferItem{
			ID:         uuid.New().String(),
			TransferID: transferID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
		})
	}

	transfer := &entity.Transfer{
		ID:           transferID,
		FromBranchID: in.FromBranchID,
		ToBranchID:   in.ToBranchID,
		Type:         in.Type,
		Status:       initial,
		Items:        items,
		Notes:        in.Notes,
		RequestedBy:  userID,
		CreatedAt:    now,
	}
	if err := uc.transferRepo.Create(transfer); err != nil {
		return nil, err
	}
	metrics.TransferTransitions.WithLabelValues(initial).Inc()
	return transfer, nil
}

// Approve pasa un traslado REQUESTED a PENDING (la sucursal destino aprueba
// la solicitud). No mueve stock.
func (uc *TransferUseCase) Approve(ctx context.Context, transferID, userID string) (*entity.Transfer, error) {
	return uc.transition(ctx, transferID, entity.TransferStatusPending, func(t *entity.Transfer, now time.Time) {
		t.ApprovedBy = userID
		t.ApprovedAt = &now
	}, nil)
}

// Ship pasa un traslado PENDING a IN_TRANSIT y descuenta el stock de origen:
// la mercancía sale del inventario de inmediato, antes de confirmarse la
// recepción. Verifica todas las líneas antes de escribir.
func (uc *TransferUseCase) Ship(ctx context.Context, transferID, userID string) (*entity.Transfer, error) {
	return uc.transition(ctx, transferID, entity.TransferStatusInTransit, func(t *entity.Transfer, now time.Time) {
		t.ShippedBy = userID
		t.ShippedAt = &now
	}, func(t *entity.Transfer, stockRepo repository.StockRepository, now time.Time) error {
		stocks := make([]*entity.Stock, len(t.Items))
		for i, item := range t.Items {
			stock, err := stockRepo.GetForUpdate(item.ProductID, t.FromBranchID)
			if err != nil {
				return err
			}
			if stock.Quantity < item.Quantity {
				return domain.ErrInsufficientStock
			}
			stocks[i] = stock
		}
		for i, item := range t.Items {
			stocks[i].Quantity -= item.Quantity
			stocks[i].UpdatedAt = now
			if err := stockRepo.Upsert(stocks[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Complete pasa un traslado IN_TRANSIT a COMPLETED y abona el stock de la
// sucursal destino.
func (uc *TransferUseCase) Complete(ctx context.Context, transferID, userID string) (*entity.Transfer, error) {
	return uc.transition(ctx, transferID, entity.TransferStatusCompleted, func(t *entity.Transfer, now time.Time) {
		t.CompletedBy = userID
		t.CompletedAt = &now
	}, func(t *entity.Transfer, stockRepo repository.StockRepository, now time.Time) error {
		for _, item := range t.Items {
			stock, err := stockRepo.GetForUpdate(item.ProductID, t.ToBranchID)
			if err != nil {
				return err
			}
			stock.Quantity += item.Quantity
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
		}
		return nil
	})
}

// Cancel cancela un traslado no terminal. Si el stock de origen ya fue
// descontado (IN_TRANSIT), lo restaura exactamente; en REQUESTED/PENDING es
// un cambio de estado puro. Cancelar un traslado ya cancelado reporta
// ErrAlreadyCancelled; desde COMPLETED, ErrInvalidTransition.
func (uc *TransferUseCase) Cancel(ctx context.Context, transferID, userID string) (*entity.Transfer, error) {
	var result *entity.Transfer
	now := time.Now()
	err := uc.txRunner.RunTransfer(ctx, func(
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error {
		transfer, err := transferRepo.GetByID(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.Status == entity.TransferStatusCancelled {
			return domain.ErrAlreadyCancelled
		}
		if !transfer.CanTransition(entity.TransferStatusCancelled) {
			return domain.ErrInvalidTransition
		}
		if transfer.StockWithdrawn() {
			for _, item := range transfer.Items {
				stock, err := stockRepo.GetForUpdate(item.ProductID, transfer.FromBranchID)
				if err != nil {
					return err
				}
				stock.Quantity += item.Quantity
				stock.UpdatedAt = now
				if err := stockRepo.Upsert(stock); err != nil {
					return err
				}
			}
		}
		transfer.Status = entity.TransferStatusCancelled
		transfer.CancelledBy = userID
		transfer.CancelledAt = &now
		if err := transferRepo.UpdateStatus(transfer); err != nil {
			return err
		}
		result = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.TransferTransitions.WithLabelValues(entity.TransferStatusCancelled).Inc()
	return result, nil
}

// GetByID devuelve un traslado por ID.
func (uc *TransferUseCase) GetByID(id string) (*entity.Transfer, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

// ListByBranch lista traslados donde la sucursal es origen o destino.
func (uc *TransferUseCase) ListByBranch(branchID string, limit, offset int) ([]*entity.Transfer, error) {
	return uc.transferRepo.ListByBranch(branchID, limit, offset)
}

// transition ejecuta una transición genérica: valida contra la máquina de
// estados, aplica la mutación de stock del paso (si la hay), estampa la
// auditoría y persiste el nuevo estado, todo en una transacción.
func (uc *TransferUseCase) transition(
	ctx context.Context,
	transferID, target string,
	stamp func(*entity.Transfer, time.Time),
	moveStock func(*entity.Transfer, repository.StockRepository, time.Time) error,
) (*entity.Transfer, error) {
	if transferID == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Transfer
	now := time.Now()
	err := uc.txRunner.RunTransfer(ctx, func(
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error {
		transfer, err := transferRepo.GetByID(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if !transfer.CanTransition(target) {
			return domain.ErrInvalidTransition
		}
		if moveStock != nil {
			if err := moveStock(transfer, stockRepo, now); err != nil {
				return err
			}
		}
		transfer.Status = target
		stamp(transfer, now)
		if err := transferRepo.UpdateStatus(transfer); err != nil {
			return err
		}
		result = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.TransferTransitions.WithLabelValues(target).Inc()
	return result, nil
}
