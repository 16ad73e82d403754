package credit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpabloc/gestion-comercial/internal/domain/credit"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests StatusFor — estado como función pura de (pagado, total)
// ──────────────────────────────────────────────────────────────────────────────

func TestStatusFor_SinPagos_Pendiente(t *testing.T) {
	assert.Equal(t, entity.CreditStatusPendiente, credit.StatusFor(100_00, 0),
		"cuenta sin abonos debe estar PENDIENTE")
}

func TestStatusFor_PagoParcial_PagadoParcial(t *testing.T) {
	assert.Equal(t, entity.CreditStatusPagadoParcial, credit.StatusFor(100_00, 40_00),
		"cuenta con abono parcial debe estar PAGADO_PARCIAL")
}

func TestStatusFor_PagoCompleto_Pagado(t *testing.T) {
	assert.Equal(t, entity.CreditStatusPagado, credit.StatusFor(100_00, 100_00),
		"cuenta saldada debe estar PAGADO")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Apply — Paid + Balance == Total en todo momento
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_MantieneInvarianteDeSaldo(t *testing.T) {
	account := &entity.CreditAccount{
		TotalCents:   250_00,
		PaidCents:    0,
		BalanceCents: 250_00,
		Status:       entity.CreditStatusPendiente,
	}

	credit.Apply(account, 100_00)
	assert.Equal(t, int64(100_00), account.PaidCents)
	assert.Equal(t, int64(150_00), account.BalanceCents)
	assert.Equal(t, account.TotalCents, account.PaidCents+account.BalanceCents,
		"Paid + Balance debe sumar Total después de cada abono")
	assert.Equal(t, entity.CreditStatusPagadoParcial, account.Status)

	credit.Apply(account, 150_00)
	assert.Equal(t, int64(250_00), account.PaidCents)
	assert.Zero(t, account.BalanceCents, "la cuenta saldada debe quedar en cero")
	assert.Equal(t, entity.CreditStatusPagado, account.Status)
}
