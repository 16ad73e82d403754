package units

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jpabloc/gestion-comercial/internal/domain"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

// ConversionCache cachea factores de conversión por producto+unidad (camino
// caliente del resolver: se consulta una vez por línea de venta/compra).
type ConversionCache interface {
	GetFactor(ctx context.Context, productID, unitID string) (decimal.Decimal, bool, error)
	SetFactor(ctx context.Context, productID, unitID string, factor decimal.Decimal, ttl time.Duration) error
	InvalidateProduct(ctx context.Context, productID string) error
}

// NoopConversionCache desactiva el cache (tests, despliegues sin Redis).
type NoopConversionCache struct{}

func (NoopConversionCache) GetFactor(context.Context, string, string) (decimal.Decimal, bool, error) {
	return decimal.Decimal{}, false, nil
}
func (NoopConversionCache) SetFactor(context.Context, string, string, decimal.Decimal, time.Duration) error {
	return nil
}
func (NoopConversionCache) InvalidateProduct(context.Context, string) error { return nil }

const factorTTL = 10 * time.Minute

// Resolver convierte cantidades expresadas en una unidad arbitraria a la
// unidad base del producto. Se invoca una vez por línea antes de cualquier
// mutación de stock; la cantidad base resuelta se persiste en la línea para
// que la reversión use exactamente lo que se descontó.
type Resolver struct {
	repo  repository.UnitConversionRepository
	cache ConversionCache
}

// NewResolver construye el resolver. cache puede ser NoopConversionCache.
func NewResolver(repo repository.UnitConversionRepository, cache ConversionCache) *Resolver {
	if cache == nil {
		cache = NoopConversionCache{}
	}
	return &Resolver{repo: repo, cache: cache}
}

// Resolve devuelve la cantidad en unidades base: quantity × factor. unitID
// vacío significa unidad base (factor 1). Retorna ErrUnitNotFound si el par
// producto+unidad no tiene conversión registrada y ErrInvalidQuantity si la
// cantidad es ≤ 0 o el resultado no es un entero de unidades base.
func (r *Resolver) Resolve(ctx context.Context, productID, unitID string, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	if unitID == "" {
		return quantity, nil
	}

	factor, ok, err := r.cache.GetFactor(ctx, productID, unitID)
	if err != nil || !ok {
		// Cache miss o Redis caído: resolver contra la base de datos.
		conv, err := r.repo.Get(productID, unitID)
		if err != nil {
			return 0, err
		}
		if conv == nil {
			return 0, domain.ErrUnitNotFound
		}
		factor = conv.Factor
		_ = r.cache.SetFactor(ctx, productID, unitID, factor, factorTTL)
	}

	base := factor.Mul(decimal.NewFromInt(quantity))
	if !base.IsInteger() || base.Sign() <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	return base.IntPart(), nil
}

// Register registra una unidad de conversión para un producto. Una unidad
// BASE debe tener factor 1; las demás, factor > 0.
func (r *Resolver) Register(ctx context.Context, productID, unitID, name, unitType string, factor decimal.Decimal) (*entity.UnitConversion, error) {
	if productID == "" || unitID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch unitType {
	case entity.UnitTypeBase:
		if !factor.Equal(decimal.NewFromInt(1)) {
			return nil, domain.ErrInvalidInput
		}
	case entity.UnitTypePurchase, entity.UnitTypeSale:
		if factor.Sign() <= 0 {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	existing, err := r.repo.Get(productID, unitID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	conv := &entity.UnitConversion{
		ID:        uuid.New().String(),
		ProductID: productID,
		UnitID:    unitID,
		Name:      name,
		UnitType:  unitType,
		Factor:    factor,
		CreatedAt: time.Now(),
	}
	if err := r.repo.Create(conv); err != nil {
		return nil, err
	}
	_ = r.cache.InvalidateProduct(ctx, productID)
	return conv, nil
}

// ListByProduct devuelve las unidades registradas de un producto.
func (r *Resolver) ListByProduct(_ context.Context, productID string) ([]*entity.UnitConversion, error) {
	return r.repo.ListByProduct(productID)
}
