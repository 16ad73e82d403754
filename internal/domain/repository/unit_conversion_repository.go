package repository

import "github.com/jpabloc/gestion-comercial/internal/domain/entity"

// UnitConversionRepository define el puerto para unidades registradas por
// producto. Get devuelve nil (sin error) si el par producto+unidad no tiene
// conversión registrada.
type UnitConversionRepository interface {
	Create(conversion *entity.UnitConversion) error
	Get(productID, unitID string) (*entity.UnitConversion, error)
	ListByProduct(productID string) ([]*entity.UnitConversion, error)
	Delete(id string) error
}
