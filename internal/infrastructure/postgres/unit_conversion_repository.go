package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jpabloc/gestion-comercial/internal/domain"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

var _ repository.UnitConversionRepository = (*UnitConversionRepo)(nil)

// UnitConversionRepo implementación de UnitConversionRepository sobre
// PostgreSQL. La columna factor es NUMERIC y se escanea a decimal.Decimal
// vía el codec registrado en el pool.
type UnitConversionRepo struct {
	q Querier
}

// NewUnitConversionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitConversionRepository(q Querier) *UnitConversionRepo {
	return &UnitConversionRepo{q: q}
}

func (r *UnitConversionRepo) Create(conversion *entity.UnitConversion) error {
	query := `
		INSERT INTO unit_conversions (id, product_id, unit_id, name, unit_type, factor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		conversion.ID, conversion.ProductID, conversion.UnitID, conversion.Name,
		conversion.UnitType, conversion.Factor, conversion.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit conversion: %w", err)
	}
	return nil
}

// Get devuelve nil sin error si el par producto+unidad no está registrado.
func (r *UnitConversionRepo) Get(productID, unitID string) (*entity.UnitConversion, error) {
	query := `
		SELECT id, product_id, unit_id, name, unit_type, factor, created_at
		FROM unit_conversions WHERE product_id = $1 AND unit_id = $2`
	var c entity.UnitConversion
	err := r.q.QueryRow(context.Background(), query, productID, unitID).Scan(
		&c.ID, &c.ProductID, &c.UnitID, &c.Name, &c.UnitType, &c.Factor, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit conversion: %w", err)
	}
	return &c, nil
}

func (r *UnitConversionRepo) ListByProduct(productID string) ([]*entity.UnitConversion, error) {
	query := `
		SELECT id, product_id, unit_id, name, unit_type, factor, created_at
		FROM unit_conversions WHERE product_id = $1 ORDER BY unit_type, unit_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list unit conversions: %w", err)
	}
	defer rows.Close()

	var result []*entity.UnitConversion
	for rows.Next() {
		var c entity.UnitConversion
		if err := rows.Scan(&c.ID, &c.ProductID, &c.UnitID, &c.Name, &c.UnitType,
			&c.Factor, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unit conversion: %w", err)
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

func (r *UnitConversionRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM unit_conversions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit conversion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
