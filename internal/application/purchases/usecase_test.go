package purchases_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/application/purchases"
	"github.com/jpabloc/gestion-comercial/internal/application/units"
	"github.com/jpabloc/gestion-comercial/internal/domain"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
	"github.com/jpabloc/gestion-comercial/internal/infrastructure/memory"
	"github.com/jpabloc/gestion-comercial/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testBranchID   = "00000000-0000-0000-0000-0000000000b1"
	testUserID     = "00000000-0000-0000-0000-0000000000u1"
	testSupplierID = "00000000-0000-0000-0000-0000000000s1"
	testProductID  = "00000000-0000-0000-0000-0000000000p1"
)

type purchaseEnv struct {
	store *memory.Store
	uc    *purchases.PurchaseUseCase
}

// newPurchaseEnv levanta el motor de compras sobre el store en memoria con un
// proveedor y un producto sin existencias (la fila de stock se crea
// perezosamente).
func newPurchaseEnv(t *testing.T) *purchaseEnv {
	t.Helper()
	store := memory.NewStore()
	store.SeedSupplier(entity.Supplier{ID: testSupplierID, Name: "Proveedor", TaxID: "800456"})
	store.SeedProduct(entity.Product{
		ID: testProductID, SKU: "SKU-1", Name: "Café 500g",
		PriceCents: 120_00, CostCents: 70_00, BaseUnit: "unidad", Status: "active",
	})

	resolver := units.NewResolver(memory.NewUnitConversionRepository(store), nil)
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := purchases.NewPurchaseUseCase(
		memory.NewTxRunner(store),
		resolver,
		memory.NewProductRepository(store),
		memory.NewSupplierRepository(store),
		memory.NewPurchaseRepository(store),
		log,
	)
	return &purchaseEnv{store: store, uc: uc}
}

func (e *purchaseEnv) stockQty(t *testing.T) int64 {
	t.Helper()
	stock, err := memory.NewStockRepository(e.store).Get(testProductID, testBranchID)
	require.NoError(t, err)
	return stock.Quantity
}

func (e *purchaseEnv) movements(t *testing.T) []*entity.CashMovement {
	t.Helper()
	list, err := memory.NewCashMovementRepository(e.store).
		ListByBranch(testBranchID, repository.CashMovementFilters{})
	require.NoError(t, err)
	return list
}

func (e *purchaseEnv) accountFor(t *testing.T, purchaseID string) *entity.CreditAccount {
	t.Helper()
	account, err := memory.NewCreditAccountRepository(e.store).GetByTransaction(purchaseID)
	require.NoError(t, err)
	return account
}

func (e *purchaseEnv) create(t *testing.T, purchaseType string, qty, costCents int64) *entity.Purchase {
	t.Helper()
	purchase, err := e.uc.CreatePurchase(context.Background(), testBranchID, testUserID, dto.CreatePurchaseRequest{
		SupplierID: testSupplierID,
		Type:       purchaseType,
		Items: []dto.PurchaseItemRequest{
			{ProductID: testProductID, Quantity: qty, UnitCostCents: costCents},
		},
	})
	require.NoError(t, err)
	return purchase
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreatePurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchase_Contado_SubeStockYRegistraEgreso(t *testing.T) {
	env := newPurchaseEnv(t)

	purchase := env.create(t, entity.PurchaseTypeCash, 20, 70_00)

	assert.Equal(t, entity.PurchaseStatusCompleted, purchase.Status)
	assert.Equal(t, int64(1400_00), purchase.TotalCents)
	assert.Equal(t, int64(20), env.stockQty(t),
		"la fila de stock se crea perezosamente y queda en 20")

	movs := env.movements(t)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.CashTypeExpense, movs[0].Type)
	assert.Equal(t, entity.CashCategoryPurchase, movs[0].Category)
	assert.Equal(t, int64(1400_00), movs[0].AmountCents)
	assert.Equal(t, purchase.ID, movs[0].ReferenceID)
}

func TestCreatePurchase_Credito_AbreCuentaCPPSinMoverCaja(t *testing.T) {
	env := newPurchaseEnv(t)

	purchase := env.create(t, entity.PurchaseTypeCredit, 10, 70_00)

	account := env.accountFor(t, purchase.ID)
	require.NotNil(t, account, "la compra a crédito debe abrir una cuenta CPP")
	assert.Equal(t, entity.CreditTypeCPP, account.Type)
	assert.Equal(t, testSupplierID, account.CounterpartyID)
	assert.Equal(t, int64(700_00), account.TotalCents)
	assert.Equal(t, int64(700_00), account.BalanceCents)
	assert.Equal(t, entity.CreditStatusPendiente, account.Status)

	assert.Empty(t, env.movements(t), "una compra a crédito no mueve caja")
	assert.Equal(t, int64(10), env.stockQty(t))
}

func TestCreatePurchase_ProveedorInexistente_ErrNotFound(t *testing.T) {
	env := newPurchaseEnv(t)
	_, err := env.uc.CreatePurchase(context.Background(), testBranchID, testUserID, dto.CreatePurchaseRequest{
		SupplierID: "no-existe",
		Type:       entity.PurchaseTypeCash,
		Items: []dto.PurchaseItemRequest{
			{ProductID: testProductID, Quantity: 1, UnitCostCents: 70_00},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CancelPurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelPurchase_Contado_RevierteStockYCompensaCaja(t *testing.T) {
	env := newPurchaseEnv(t)
	ctx := context.Background()

	purchase := env.create(t, entity.PurchaseTypeCash, 20, 70_00)
	require.NoError(t, env.uc.CancelPurchase(ctx, purchase.ID, testUserID))

	assert.Zero(t, env.stockQty(t), "lo recibido debe descontarse por completo")

	movs := env.movements(t)
	require.Len(t, movs, 2, "egreso original + ingreso compensatorio")
	assert.Equal(t, entity.CashTypeIncome, movs[1].Type)
	assert.Equal(t, entity.CashCategoryAdjustment, movs[1].Category)
	assert.Equal(t, int64(1400_00), movs[1].AmountCents)

	balance, err := memory.NewCashMovementRepository(env.store).BalanceByBranch(testBranchID)
	require.NoError(t, err)
	assert.Zero(t, balance)

	got, err := env.uc.GetByID(purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCancelled, got.Status)
	assert.Equal(t, testUserID, got.CancelledBy)
	assert.NotNil(t, got.CancelledAt)
}

func TestCancelPurchase_StockYaVendido_ErrStockInsufficientForReversal(t *testing.T) {
	env := newPurchaseEnv(t)
	ctx := context.Background()

	// Comprar 20, vender 15 por fuera: quedan 5 y la reversión exige 20.
	purchase := env.create(t, entity.PurchaseTypeCash, 20, 70_00)
	env.store.SeedStock(entity.Stock{ProductID: testProductID, BranchID: testBranchID, Quantity: 5})

	err := env.uc.CancelPurchase(ctx, purchase.ID, testUserID)
	require.ErrorIs(t, err, domain.ErrStockInsufficientForReversal)

	assert.Equal(t, int64(5), env.stockQty(t), "nada debe haberse descontado")
	got, err := env.uc.GetByID(purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCompleted, got.Status)
	assert.Len(t, env.movements(t), 1, "sin movimiento compensatorio")
}

func TestCancelPurchase_CPPConAbonos_ErrPaymentsApplied(t *testing.T) {
	env := newPurchaseEnv(t)
	ctx := context.Background()

	purchase := env.create(t, entity.PurchaseTypeCredit, 10, 70_00)

	account := env.accountFor(t, purchase.ID)
	require.NotNil(t, account)
	require.NoError(t, memory.NewCreditPaymentRepository(env.store).Create(&entity.CreditPayment{
		ID: "pago-1", CreditAccountID: account.ID, AmountCents: 100_00,
		Method: "efectivo", CreatedBy: testUserID, CreatedAt: time.Now(),
	}))

	err := env.uc.CancelPurchase(ctx, purchase.ID, testUserID)
	require.ErrorIs(t, err, domain.ErrPaymentsApplied)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assert.Equal(t, int64(10), env.stockQty(t))
	assert.NotNil(t, env.accountFor(t, purchase.ID), "la cuenta CPP debe sobrevivir")
}

func TestCancelPurchase_ContadoSinMovimientoDeCaja_ErrInconsistentLedger(t *testing.T) {
	env := newPurchaseEnv(t)
	ctx := context.Background()

	// Compra CASH sembrada directamente, sin su egreso de caja.
	env.store.SeedStock(entity.Stock{ProductID: testProductID, BranchID: testBranchID, Quantity: 8})
	purchase := &entity.Purchase{
		ID:         "compra-huerfana",
		BranchID:   testBranchID,
		SupplierID: testSupplierID,
		Type:       entity.PurchaseTypeCash,
		Status:     entity.PurchaseStatusCompleted,
		TotalCents: 560_00,
		Items: []entity.PurchaseItem{
			{ID: "item-1", PurchaseID: "compra-huerfana", ProductID: testProductID,
				Quantity: 8, BaseQuantity: 8, UnitCostCents: 70_00, SubtotalCents: 560_00},
		},
		CreatedBy: testUserID,
		CreatedAt: time.Now(),
	}
	require.NoError(t, memory.NewPurchaseRepository(env.store).Create(purchase))

	err := env.uc.CancelPurchase(ctx, purchase.ID, testUserID)
	require.ErrorIs(t, err, domain.ErrInconsistentLedger)

	got, err := env.uc.GetByID(purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCompleted, got.Status,
		"la compra debe seguir COMPLETED tras el rollback")
	assert.Equal(t, int64(8), env.stockQty(t))
}

func TestCancelPurchase_DobleCancelacion_ErrAlreadyCancelled(t *testing.T) {
	env := newPurchaseEnv(t)
	ctx := context.Background()

	purchase := env.create(t, entity.PurchaseTypeCash, 5, 70_00)
	require.NoError(t, env.uc.CancelPurchase(ctx, purchase.ID, testUserID))

	err := env.uc.CancelPurchase(ctx, purchase.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
}
