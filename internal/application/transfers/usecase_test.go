package transfers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/application/transfers"
	"github.com/jpabloc/gestion-comercial/internal/domain"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testBranchA   = "00000000-0000-0000-0000-0000000000b1"
	testBranchB   = "00000000-0000-0000-0000-0000000000b2"
	testUserID    = "00000000-0000-0000-0000-0000000000u1"
	testProductID = "00000000-0000-0000-0000-0000000000p1"
)

type transferEnv struct {
	store *memory.Store
	uc    *transfers.TransferUseCase
}

// newTransferEnv levanta el motor de traslados con dos sucursales y 10
// unidades del producto en la sucursal origen.
func newTransferEnv(t *testing.T) *transferEnv {
	t.Helper()
	store := memory.NewStore()
	store.SeedBranch(entity.Branch{ID: testBranchA, Name: "Principal", Status: "active"})
	store.SeedBranch(entity.Branch{ID: testBranchB, Name: "Norte", Status: "active"})
	store.SeedProduct(entity.Product{
		ID: testProductID, SKU: "SKU-1", Name: "Aceite 1L",
		PriceCents: 90_00, BaseUnit: "unidad", Status: "active",
	})
	store.SeedStock(entity.Stock{ProductID: testProductID, BranchID: testBranchA, Quantity: 10})

	uc := transfers.NewTransferUseCase(
		memory.NewTxRunner(store),
		memory.NewBranchRepository(store),
		memory.NewProductRepository(store),
		memory.NewTransferRepository(store),
	)
	return &transferEnv{store: store, uc: uc}
}

func (e *transferEnv) stockQty(t *testing.T, branchID string) int64 {
	t.Helper()
	stock, err := memory.NewStockRepository(e.store).Get(testProductID, branchID)
	require.NoError(t, err)
	return stock.Quantity
}

func (e *transferEnv) create(t *testing.T, transferType string, qty int64) *entity.Transfer {
	t.Helper()
	transfer, err := e.uc.Create(context.Background(), testUserID, dto.CreateTransferRequest{
		FromBranchID: testBranchA,
		ToBranchID:   testBranchB,
		Type:         transferType,
		Items: []dto.TransferItemRequest{
			{ProductID: testProductID, Quantity: qty},
		},
	})
	require.NoError(t, err)
	return transfer
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create — estado inicial según el tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RequestNaceRequested(t *testing.T) {
	env := newTransferEnv(t)
	transfer := env.create(t, entity.TransferTypeRequest, 3)

	assert.Equal(t, entity.TransferStatusRequested, transfer.Status)
	assert.Equal(t, testUserID, transfer.RequestedBy)
	assert.Equal(t, int64(10), env.stockQty(t, testBranchA),
		"crear la solicitud no mueve stock")
}

func TestCreate_SendNacePending(t *testing.T) {
	env := newTransferEnv(t)
	transfer := env.create(t, entity.TransferTypeSend, 3)
	assert.Equal(t, entity.TransferStatusPending, transfer.Status)
}

func TestCreate_MismaSucursal_Rechazado(t *testing.T) {
	env := newTransferEnv(t)
	_, err := env.uc.Create(context.Background(), testUserID, dto.CreateTransferRequest{
		FromBranchID: testBranchA,
		ToBranchID:   testBranchA,
		Type:         entity.TransferTypeSend,
		Items:        []dto.TransferItemRequest{{ProductID: testProductID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_TipoDesconocido_Rechazado(t *testing.T) {
	env := newTransferEnv(t)
	_, err := env.uc.Create(context.Background(), testUserID, dto.CreateTransferRequest{
		FromBranchID: testBranchA,
		ToBranchID:   testBranchB,
		Type:         "LOAN",
		Items:        []dto.TransferItemRequest{{ProductID: testProductID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ciclo completo — conservación de unidades
// ──────────────────────────────────────────────────────────────────────────────

func TestCicloCompleto_LasUnidadesSeConservan(t *testing.T) {
	env := newTransferEnv(t)
	ctx := context.Background()

	transfer := env.create(t, entity.TransferTypeRequest, 3)

	transfer, err := env.uc.Approve(ctx, transfer.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPending, transfer.Status)
	assert.Equal(t, testUserID, transfer.ApprovedBy)
	assert.NotNil(t, transfer.ApprovedAt)
	assert.Equal(t, int64(10), env.stockQty(t, testBranchA), "aprobar no mueve stock")

	transfer, err = env.uc.Ship(ctx, transfer.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusInTransit, transfer.Status)
	assert.Equal(t, int64(7), env.stockQty(t, testBranchA),
		"al despachar el origen queda en 10 − 3")
	assert.Zero(t, env.stockQty(t, testBranchB),
		"en tránsito la mercancía no cuenta en ninguna sucursal")

	transfer, err = env.uc.Complete(ctx, transfer.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCompleted, transfer.Status)
	assert.Equal(t, testUserID, transfer.CompletedBy)
	assert.Equal(t, int64(7), env.stockQty(t, testBranchA))
	assert.Equal(t, int64(3), env.stockQty(t, testBranchB))
	assert.Equal(t, int64(10), env.stockQty(t, testBranchA)+env.stockQty(t, testBranchB),
		"el total del sistema no cambia: ni se fabrican ni se pierden unidades")
}

func TestShip_StockInsuficiente_SinMutaciones(t *testing.T) {
	env := newTransferEnv(t)
	ctx := context.Background()

	transfer := env.create(t, entity.TransferTypeSend, 25)

	_, err := env.uc.Ship(ctx, transfer.ID, testUserID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), env.stockQty(t, testBranchA))
	got, err := env.uc.GetByID(transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPending, got.Status,
		"el traslado debe seguir PENDING tras el rollback")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_EnTransito_RestauraElOrigen(t *testing.T) {
	env := newTransferEnv(t)
	ctx := context.Background()

	transfer := env.create(t, entity.TransferTypeSend, 4)
	_, err := env.uc.Ship(ctx, transfer.ID, testUserID)
	require.NoError(t, err)
	require.Equal(t, int64(6), env.stockQty(t, testBranchA))

	cancelled, err := env.uc.Cancel(ctx, transfer.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCancelled, cancelled.Status)
	assert.Equal(t, testUserID, cancelled.CancelledBy)
	assert.NotNil(t, cancelled.CancelledAt)

	assert.Equal(t, int64(10), env.stockQty(t, testBranchA),
		"cancelar en tránsito devuelve al origen exactamente lo descontado")
	assert.Zero(t, env.stockQty(t, testBranchB))
}

func TestCancel_AntesDelDespacho_NoTocaStock(t *testing.T) {
	env := newTransferEnv(t)
	ctx := context.Background()

	transfer := env.create(t, entity.TransferTypeSend, 4)
	cancelled, err := env.uc.Cancel(ctx, transfer.ID, testUserID)
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusCancelled, cancelled.Status)
	assert.Equal(t, int64(10), env.stockQty(t, testBranchA))
}

func TestCancel_YaCancelado_ErrAlreadyCancelled(t *testing.T) {
	env := newTransferEnv(t)
	ctx := context.Background()

	transfer := env.create(t, entity.TransferTypeSend, 2)
	_, err := env.uc.Cancel(ctx, transfer.ID, testUserID)
	require.NoError(t, err)

	_, err = env.uc.Cancel(ctx, transfer.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
}

func TestCancel_Completado_ErrInvalidTransition(t *testing.T) {
	env := newTransferEnv(t)
	ctx := context.Background()

	transfer := env.create(t, entity.TransferTypeSend, 2)
	_, err := env.uc.Ship(ctx, transfer.ID, testUserID)
	require.NoError(t, err)
	_, err = env.uc.Complete(ctx, transfer.ID, testUserID)
	require.NoError(t, err)

	_, err = env.uc.Cancel(ctx, transfer.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests transiciones inválidas
// ──────────────────────────────────────────────────────────────────────────────

func TestTransiciones_SinSaltos(t *testing.T) {
	env := newTransferEnv(t)
	ctx := context.Background()

	// Un REQUEST recién creado no puede despacharse sin aprobación.
	transfer := env.create(t, entity.TransferTypeRequest, 2)
	_, err := env.uc.Ship(ctx, transfer.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = env.uc.Complete(ctx, transfer.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Un SEND ya nace PENDING: aprobar de nuevo es inválido.
	send := env.create(t, entity.TransferTypeSend, 2)
	_, err = env.uc.Approve(ctx, send.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
