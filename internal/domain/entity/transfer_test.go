package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests InitialTransferStatus — el estado inicial se deriva del tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestInitialTransferStatus_RequestNaceRequested(t *testing.T) {
	assert.Equal(t, entity.TransferStatusRequested,
		entity.InitialTransferStatus(entity.TransferTypeRequest))
}

func TestInitialTransferStatus_SendNacePending(t *testing.T) {
	assert.Equal(t, entity.TransferStatusPending,
		entity.InitialTransferStatus(entity.TransferTypeSend))
}

func TestInitialTransferStatus_TipoDesconocido_Vacio(t *testing.T) {
	assert.Empty(t, entity.InitialTransferStatus("LOAN"),
		"un tipo desconocido no debe producir estado inicial")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CanTransition — máquina de estados del traslado
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_CaminoFeliz(t *testing.T) {
	tr := &entity.Transfer{Status: entity.TransferStatusRequested}
	assert.True(t, tr.CanTransition(entity.TransferStatusPending))

	tr.Status = entity.TransferStatusPending
	assert.True(t, tr.CanTransition(entity.TransferStatusInTransit))

	tr.Status = entity.TransferStatusInTransit
	assert.True(t, tr.CanTransition(entity.TransferStatusCompleted))
}

func TestCanTransition_CancelableDesdeNoTerminales(t *testing.T) {
	for _, status := range []string{
		entity.TransferStatusRequested,
		entity.TransferStatusPending,
		entity.TransferStatusInTransit,
	} {
		tr := &entity.Transfer{Status: status}
		assert.True(t, tr.CanTransition(entity.TransferStatusCancelled),
			"debe poder cancelarse desde %s", status)
	}
}

func TestCanTransition_SinSaltosNiRetrocesos(t *testing.T) {
	tr := &entity.Transfer{Status: entity.TransferStatusRequested}
	assert.False(t, tr.CanTransition(entity.TransferStatusInTransit),
		"no se puede saltar de REQUESTED a IN_TRANSIT")
	assert.False(t, tr.CanTransition(entity.TransferStatusCompleted))

	tr.Status = entity.TransferStatusInTransit
	assert.False(t, tr.CanTransition(entity.TransferStatusPending),
		"no hay retrocesos en la máquina de estados")
}

func TestCanTransition_TerminalesSinSalidas(t *testing.T) {
	for _, status := range []string{
		entity.TransferStatusCompleted,
		entity.TransferStatusCancelled,
	} {
		tr := &entity.Transfer{Status: status}
		assert.True(t, tr.IsTerminal())
		for _, target := range []string{
			entity.TransferStatusRequested,
			entity.TransferStatusPending,
			entity.TransferStatusInTransit,
			entity.TransferStatusCompleted,
			entity.TransferStatusCancelled,
		} {
			assert.False(t, tr.CanTransition(target),
				"%s es terminal y no debe transicionar a %s", status, target)
		}
	}
}

func TestStockWithdrawn_SoloEnTransito(t *testing.T) {
	tr := &entity.Transfer{Status: entity.TransferStatusInTransit}
	assert.True(t, tr.StockWithdrawn())

	tr.Status = entity.TransferStatusPending
	assert.False(t, tr.StockWithdrawn(),
		"antes del despacho el stock de origen sigue intacto")
}
