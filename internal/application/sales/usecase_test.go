package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/application/sales"
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
	testCustomerID = "00000000-0000-0000-0000-0000000000c1"
	testProductID  = "00000000-0000-0000-0000-0000000000p1"
	testProductID2 = "00000000-0000-0000-0000-0000000000p2"
)

type saleEnv struct {
	store *memory.Store
	uc    *sales.SaleUseCase
}

// newSaleEnv levanta el motor de ventas sobre el store en memoria con un
// producto (precio 5000 centavos, 10 unidades en stock), una unidad caja-12
// y un cliente sin deuda.
func newSaleEnv(t *testing.T) *saleEnv {
	t.Helper()
	store := memory.NewStore()
	store.SeedProduct(entity.Product{
		ID: testProductID, SKU: "SKU-1", Name: "Arroz 500g",
		PriceCents: 50_00, BaseUnit: "unidad", Status: "active",
	})
	store.SeedProduct(entity.Product{
		ID: testProductID2, SKU: "SKU-2", Name: "Azúcar 1kg",
		PriceCents: 80_00, BaseUnit: "unidad", Status: "active",
	})
	store.SeedCustomer(entity.Customer{ID: testCustomerID, Name: "Cliente", TaxID: "900123"})
	store.SeedStock(entity.Stock{ProductID: testProductID, BranchID: testBranchID, Quantity: 10})
	store.SeedStock(entity.Stock{ProductID: testProductID2, BranchID: testBranchID, Quantity: 3})
	store.SeedConversion(entity.UnitConversion{
		ID: "conv-caja", ProductID: testProductID, UnitID: "caja-12",
		Name: "Caja x12", UnitType: entity.UnitTypeSale, Factor: decimal.NewFromInt(12),
	})

	resolver := units.NewResolver(memory.NewUnitConversionRepository(store), nil)
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := sales.NewSaleUseCase(
		memory.NewTxRunner(store),
		resolver,
		memory.NewProductRepository(store),
		memory.NewCustomerRepository(store),
		memory.NewSaleRepository(store),
		log,
	)
	return &saleEnv{store: store, uc: uc}
}

func (e *saleEnv) stockQty(t *testing.T, productID string) int64 {
	t.Helper()
	stock, err := memory.NewStockRepository(e.store).Get(productID, testBranchID)
	require.NoError(t, err)
	return stock.Quantity
}

func (e *saleEnv) movements(t *testing.T) []*entity.CashMovement {
	t.Helper()
	list, err := memory.NewCashMovementRepository(e.store).
		ListByBranch(testBranchID, repository.CashMovementFilters{})
	require.NoError(t, err)
	return list
}

func (e *saleEnv) customerDebt(t *testing.T) int64 {
	t.Helper()
	customer, err := memory.NewCustomerRepository(e.store).GetByID(testCustomerID)
	require.NoError(t, err)
	require.NotNil(t, customer)
	return customer.CurrentDebtCents
}

func (e *saleEnv) accountFor(t *testing.T, saleID string) *entity.CreditAccount {
	t.Helper()
	account, err := memory.NewCreditAccountRepository(e.store).GetByTransaction(saleID)
	require.NoError(t, err)
	return account
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_Contado_DescuentaStockYRegistraIngreso(t *testing.T) {
	env := newSaleEnv(t)

	sale, err := env.uc.CreateSale(context.Background(), testBranchID, testUserID, dto.CreateSaleRequest{
		Type: entity.SaleTypeCash,
		Items: []dto.SaleItemRequest{
			{ProductID: testProductID, Quantity: 4, UnitPriceCents: 50_00},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, entity.SaleStatusActive, sale.Status)
	assert.Equal(t, int64(200_00), sale.TotalCents)
	assert.Equal(t, int64(6), env.stockQty(t, testProductID), "10 − 4 = 6")

	movs := env.movements(t)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.CashTypeIncome, movs[0].Type)
	assert.Equal(t, entity.CashCategorySale, movs[0].Category)
	assert.Equal(t, int64(200_00), movs[0].AmountCents)
	assert.Equal(t, sale.ID, movs[0].ReferenceID)
}

func TestCreateSale_PrecioCeroUsaElPrecioDelCatalogo(t *testing.T) {
	env := newSaleEnv(t)

	sale, err := env.uc.CreateSale(context.Background(), testBranchID, testUserID, dto.CreateSaleRequest{
		Type: entity.SaleTypeCash,
		Items: []dto.SaleItemRequest{
			{ProductID: testProductID, Quantity: 2}, // sin precio explícito
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100_00), sale.TotalCents,
		"2 × precio de catálogo (5000) = 10000")
}

func TestCreateSale_ConUnidadDeConversion_PersisteBaseQuantity(t *testing.T) {
	env := newSaleEnv(t)
	// 10 en stock no alcanza para 1 caja de 12: subimos el stock primero.
	env.store.SeedStock(entity.Stock{ProductID: testProductID, BranchID: testBranchID, Quantity: 30})

	sale, err := env.uc.CreateSale(context.Background(), testBranchID, testUserID, dto.CreateSaleRequest{
		Type: entity.SaleTypeCash,
		Items: []dto.SaleItemRequest{
			{ProductID: testProductID, UnitID: "caja-12", Quantity: 2, UnitPriceCents: 550_00},
		},
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 1)
	assert.Equal(t, int64(2), sale.Items[0].Quantity)
	assert.Equal(t, int64(24), sale.Items[0].BaseQuantity,
		"2 cajas × factor 12 = 24 unidades base")
	assert.Equal(t, int64(1100_00), sale.TotalCents, "el subtotal usa la cantidad facturada")
	assert.Equal(t, int64(6), env.stockQty(t, testProductID), "30 − 24 = 6")
}

func TestCreateSale_Credito_AbreCuentaCXCYSubeDeuda(t *testing.T) {
	env := newSaleEnv(t)

	sale, err := env.uc.CreateSale(context.Background(), testBranchID, testUserID, dto.CreateSaleRequest{
		Type:       entity.SaleTypeCredit,
		CustomerID: testCustomerID,
		Items: []dto.SaleItemRequest{
			{ProductID: testProductID, Quantity: 3, UnitPriceCents: 50_00},
		},
	})
	require.NoError(t, err)

	account := env.accountFor(t, sale.ID)
	require.NotNil(t, account, "la venta a crédito debe abrir una cuenta CXC")
	assert.Equal(t, entity.CreditTypeCXC, account.Type)
	assert.Equal(t, testCustomerID, account.CounterpartyID)
	assert.Equal(t, int64(150_00), account.TotalCents)
	assert.Zero(t, account.PaidCents)
	assert.Equal(t, int64(150_00), account.BalanceCents)
	assert.Equal(t, entity.CreditStatusPendiente, account.Status)

	assert.Equal(t, int64(150_00), env.customerDebt(t))
	assert.Empty(t, env.movements(t), "una venta a crédito no mueve caja")
}

func TestCreateSale_CreditoSinCliente_Rechazada(t *testing.T) {
	env := newSaleEnv(t)
	_, err := env.uc.CreateSale(context.Background(), testBranchID, testUserID, dto.CreateSaleRequest{
		Type: entity.SaleTypeCredit,
		Items: []dto.SaleItemRequest{
			{ProductID: testProductID, Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_StockInsuficiente_TodoONada(t *testing.T) {
	env := newSaleEnv(t)

	// La primera línea alcanza; la segunda (3 en stock, pide 5) no.
	_, err := env.uc.CreateSale(context.Background(), testBranchID, testUserID, dto.CreateSaleRequest{
		Type: entity.SaleTypeCash,
		Items: []dto.SaleItemRequest{
			{ProductID: testProductID, Quantity: 2, UnitPriceCents: 50_00},
			{ProductID: testProductID2, Quantity: 5, UnitPriceCents: 80_00},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), env.stockQty(t, testProductID),
		"ninguna línea debe haberse descontado")
	assert.Equal(t, int64(3), env.stockQty(t, testProductID2))
	assert.Empty(t, env.movements(t))

	list, err := memory.NewSaleRepository(env.store).ListByBranch(testBranchID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "no debe persistir cabecera de una venta fallida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CancelSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelSale_Contado_RestauraStockYCompensaCaja(t *testing.T) {
	env := newSaleEnv(t)
	ctx := context.Background()

	sale, err := env.uc.CreateSale(ctx, testBranchID, testUserID, dto.CreateSaleRequest{
		Type: entity.SaleTypeCash,
		Items: []dto.SaleItemRequest{
			{ProductID: testProductID, Quantity: 4, UnitPriceCents: 50_00},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.uc.CancelSale(ctx, sale.ID, testUserID))

	assert.Equal(t, int64(10), env.stockQty(t, testProductID),
		"el stock debe volver al valor previo a la venta")

	movs := env.movements(t)
	require.Len(t, movs, 2, "ingreso original + egreso compensatorio")
	assert.Equal(t, entity.CashTypeExpense, movs[1].Type)
	assert.Equal(t, entity.CashCategoryAdjustment, movs[1].Category)
	assert.Equal(t, int64(200_00), movs[1].AmountCents)

	balance, err := memory.NewCashMovementRepository(env.store).BalanceByBranch(testBranchID)
	require.NoError(t, err)
	assert.Zero(t, balance, "la compensación deja el saldo neto en cero")

	got, err := env.uc.GetByID(sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, got.Status)
	assert.Equal(t, testUserID, got.CancelledBy)
	assert.NotNil(t, got.CancelledAt)
}

func TestCancelSale_DobleCancelacion_ErrAlreadyCancelled(t *testing.T) {
	env := newSaleEnv(t)
	ctx := context.Background()

	sale, err := env.uc.CreateSale(ctx, testBranchID, testUserID, dto.CreateSaleRequest{
		Type:  entity.SaleTypeCash,
		Items: []dto.SaleItemRequest{{ProductID: testProductID, Quantity: 1, UnitPriceCents: 50_00}},
	})
	require.NoError(t, err)
	require.NoError(t, env.uc.CancelSale(ctx, sale.ID, testUserID))

	err = env.uc.CancelSale(ctx, sale.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "el subcaso también es ErrInvalidState")

	assert.Equal(t, int64(10), env.stockQty(t, testProductID),
		"la segunda cancelación no debe volver a restaurar stock")
}

func TestCancelSale_CreditoConAbonosParciales_ReembolsaYBajaDeuda(t *testing.T) {
	env := newSaleEnv(t)
	ctx := context.Background()

	sale, err := env.uc.CreateSale(ctx, testBranchID, testUserID, dto.CreateSaleRequest{
		Type:       entity.SaleTypeCredit,
		CustomerID: testCustomerID,
		Items: []dto.SaleItemRequest{
			{ProductID: testProductID, Quantity: 2, UnitPriceCents: 50_00},
		},
	})
	require.NoError(t, err)

	// Simular un abono parcial de 4000 ya aplicado: la cuenta registra el
	// pago y la deuda vigente solo refleja el saldo abierto.
	account := env.accountFor(t, sale.ID)
	require.NotNil(t, account)
	account.PaidCents = 40_00
	account.BalanceCents = account.TotalCents - account.PaidCents
	account.Status = entity.CreditStatusPagadoParcial
	require.NoError(t, memory.NewCreditAccountRepository(env.store).UpdateAmounts(account))
	require.NoError(t, memory.NewCustomerRepository(env.store).AdjustDebt(testCustomerID, -40_00))
	require.Equal(t, int64(60_00), env.customerDebt(t))

	require.NoError(t, env.uc.CancelSale(ctx, sale.ID, testUserID))

	assert.Equal(t, int64(10), env.stockQty(t, testProductID))
	assert.Zero(t, env.customerDebt(t), "la deuda baja por el saldo abierto, no por el total")
	assert.Nil(t, env.accountFor(t, sale.ID), "la cuenta CXC se elimina al cancelar la venta")

	movs := env.movements(t)
	require.Len(t, movs, 1, "solo el reembolso de lo abonado mueve caja")
	assert.Equal(t, entity.CashTypeExpense, movs[0].Type)
	assert.Equal(t, entity.CashCategoryAdjustment, movs[0].Category)
	assert.Equal(t, int64(40_00), movs[0].AmountCents)
}

func TestCancelSale_ContadoSinMovimientoDeCaja_ErrInconsistentLedger(t *testing.T) {
	env := newSaleEnv(t)
	ctx := context.Background()

	// Venta CASH sembrada directamente, sin su movimiento de caja: la
	// contradicción debe detectarse y nada debe mutar.
	sale := &entity.Sale{
		ID:         "sale-huerfana",
		BranchID:   testBranchID,
		Type:       entity.SaleTypeCash,
		Status:     entity.SaleStatusActive,
		TotalCents: 50_00,
		Items: []entity.SaleItem{
			{ID: "item-1", SaleID: "sale-huerfana", ProductID: testProductID,
				Quantity: 1, BaseQuantity: 1, UnitPriceCents: 50_00, SubtotalCents: 50_00},
		},
		CreatedBy: testUserID,
		CreatedAt: time.Now(),
	}
	require.NoError(t, memory.NewSaleRepository(env.store).Create(sale))

	err := env.uc.CancelSale(ctx, sale.ID, testUserID)
	require.ErrorIs(t, err, domain.ErrInconsistentLedger)

	got, err := env.uc.GetByID(sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusActive, got.Status,
		"la venta debe seguir ACTIVE tras el rollback")
	assert.Equal(t, int64(10), env.stockQty(t, testProductID),
		"la restauración de stock debe haberse revertido")
	assert.Empty(t, env.movements(t))
}

func TestCancelSale_VentaInexistente_ErrNotFound(t *testing.T) {
	env := newSaleEnv(t)
	err := env.uc.CancelSale(context.Background(), "no-existe", testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
