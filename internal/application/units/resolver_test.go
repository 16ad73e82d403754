package units_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpabloc/gestion-comercial/internal/application/units"
	"github.com/jpabloc/gestion-comercial/internal/domain"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID = "00000000-0000-0000-0000-00000000000a"
	testUnitCaja  = "caja-12"
)

// spyCache implementa ConversionCache sobre un mapa y cuenta aciertos y
// escrituras para verificar el camino de lectura del resolver.
type spyCache struct {
	factors map[string]decimal.Decimal
	hits    int
	sets    int
}

func newSpyCache() *spyCache {
	return &spyCache{factors: make(map[string]decimal.Decimal)}
}

func (c *spyCache) GetFactor(_ context.Context, productID, unitID string) (decimal.Decimal, bool, error) {
	f, ok := c.factors[productID+"|"+unitID]
	if ok {
		c.hits++
	}
	return f, ok, nil
}

func (c *spyCache) SetFactor(_ context.Context, productID, unitID string, factor decimal.Decimal, _ time.Duration) error {
	c.factors[productID+"|"+unitID] = factor
	c.sets++
	return nil
}

func (c *spyCache) InvalidateProduct(_ context.Context, productID string) error {
	for key := range c.factors {
		if len(key) > len(productID) && key[:len(productID)] == productID {
			delete(c.factors, key)
		}
	}
	return nil
}

// newResolver construye un resolver sobre el store en memoria con la unidad
// caja-12 (factor 12) ya registrada.
func newResolver(t *testing.T, cache units.ConversionCache) (*units.Resolver, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedConversion(entity.UnitConversion{
		ID:        "conv-1",
		ProductID: testProductID,
		UnitID:    testUnitCaja,
		Name:      "Caja x12",
		UnitType:  entity.UnitTypeSale,
		Factor:    decimal.NewFromInt(12),
		CreatedAt: time.Now(),
	})
	return units.NewResolver(memory.NewUnitConversionRepository(store), cache), store
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Resolve
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_UnidadBase_DevuelveCantidadTalCual(t *testing.T) {
	r, _ := newResolver(t, nil)
	base, err := r.Resolve(context.Background(), testProductID, "", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), base, "unit_id vacío es unidad base: factor 1")
}

func TestResolve_UnidadRegistrada_MultiplicaPorElFactor(t *testing.T) {
	r, _ := newResolver(t, nil)
	base, err := r.Resolve(context.Background(), testProductID, testUnitCaja, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(36), base, "3 cajas de 12 son 36 unidades base")
}

func TestResolve_UnidadNoRegistrada_ErrUnitNotFound(t *testing.T) {
	r, _ := newResolver(t, nil)
	_, err := r.Resolve(context.Background(), testProductID, "docena", 2)
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)
}

func TestResolve_CantidadNoPositiva_ErrInvalidQuantity(t *testing.T) {
	r, _ := newResolver(t, nil)

	_, err := r.Resolve(context.Background(), testProductID, testUnitCaja, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = r.Resolve(context.Background(), testProductID, "", -5)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestResolve_ProductoNoEnteroEnBase_ErrInvalidQuantity(t *testing.T) {
	store := memory.NewStore()
	// Factor fraccionario: 1 unidad vendida = 0.4 unidades base.
	store.SeedConversion(entity.UnitConversion{
		ID:        "conv-frac",
		ProductID: testProductID,
		UnitID:    "bolsa-400g",
		Name:      "Bolsa 400g",
		UnitType:  entity.UnitTypeSale,
		Factor:    decimal.RequireFromString("0.4"),
	})
	r := units.NewResolver(memory.NewUnitConversionRepository(store), nil)

	// 5 × 0.4 = 2 → válido.
	base, err := r.Resolve(context.Background(), testProductID, "bolsa-400g", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), base)

	// 3 × 0.4 = 1.2 → no es un entero de unidades base.
	_, err = r.Resolve(context.Background(), testProductID, "bolsa-400g", 3)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestResolve_CacheReadThrough(t *testing.T) {
	cache := newSpyCache()
	r, _ := newResolver(t, cache)
	ctx := context.Background()

	// Primera resolución: miss, se consulta el repo y se puebla el cache.
	_, err := r.Resolve(ctx, testProductID, testUnitCaja, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits)
	assert.Equal(t, 1, cache.sets)

	// Segunda resolución: hit, sin volver al repo.
	base, err := r.Resolve(ctx, testProductID, testUnitCaja, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(24), base)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, cache.sets, "un hit no debe reescribir el cache")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_UnidadBaseConFactorDistintoDeUno_Rechazada(t *testing.T) {
	r, _ := newResolver(t, nil)
	_, err := r.Register(context.Background(), testProductID, "kg", "Kilogramo",
		entity.UnitTypeBase, decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"una unidad BASE solo admite factor 1")
}

func TestRegister_FactorNoPositivo_Rechazado(t *testing.T) {
	r, _ := newResolver(t, nil)
	_, err := r.Register(context.Background(), testProductID, "media", "Media docena",
		entity.UnitTypeSale, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_Duplicada_ErrDuplicate(t *testing.T) {
	r, _ := newResolver(t, nil)
	_, err := r.Register(context.Background(), testProductID, testUnitCaja, "Caja x12",
		entity.UnitTypeSale, decimal.NewFromInt(12))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_InvalidaElCacheDelProducto(t *testing.T) {
	cache := newSpyCache()
	r, _ := newResolver(t, cache)
	ctx := context.Background()

	// Poblar el cache con el factor actual.
	_, err := r.Resolve(ctx, testProductID, testUnitCaja, 1)
	require.NoError(t, err)

	_, err = r.Register(ctx, testProductID, "docena", "Docena",
		entity.UnitTypeSale, decimal.NewFromInt(12))
	require.NoError(t, err)

	assert.Empty(t, cache.factors, "registrar una unidad debe invalidar el cache del producto")
}
