package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (cabecera +
// líneas en tablas sales y sale_items).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y sus líneas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (id, branch_id, customer_id, type, status, total_cents, created_by, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.BranchID, sale.CustomerID, sale.Type, sale.Status,
		sale.TotalCents, sale.CreatedBy, sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	itemQuery := `
		INSERT INTO sale_items (id, sale_id, product_id, unit_id, quantity, base_quantity, unit_price_cents, subtotal_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, item := range sale.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.SaleID, item.ProductID, item.UnitID,
			item.Quantity, item.BaseQuantity, item.UnitPriceCents, item.SubtotalCents)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas. Devuelve nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	query := `
		SELECT id, branch_id, COALESCE(customer_id, ''), type, status, total_cents,
		       created_by, created_at, COALESCE(cancelled_by, ''), cancelled_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.BranchID, &s.CustomerID, &s.Type, &s.Status, &s.TotalCents,
		&s.CreatedBy, &s.CreatedAt, &s.CancelledBy, &s.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

func (r *SaleRepo) loadItems(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, COALESCE(unit_id, ''), quantity, base_quantity, unit_price_cents, subtotal_cents
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.UnitID,
			&it.Quantity, &it.BaseQuantity, &it.UnitPriceCents, &it.SubtotalCents); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus cambia el estado de la venta; al cancelar estampa quién y cuándo.
func (r *SaleRepo) UpdateStatus(id, status, cancelledBy string) error {
	query := `
		UPDATE sales
		SET status = $2,
		    cancelled_by = CASE WHEN $2 = 'CANCELLED' THEN $3 ELSE cancelled_by END,
		    cancelled_at = CASE WHEN $2 = 'CANCELLED' THEN now() ELSE cancelled_at END
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, cancelledBy)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update sale status: venta %s no existe", id)
	}
	return nil
}

// ListByBranch lista ventas de una sucursal (solo cabeceras).
func (r *SaleRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, branch_id, COALESCE(customer_id, ''), type, status, total_cents,
		       created_by, created_at, COALESCE(cancelled_by, ''), cancelled_at
		FROM sales WHERE branch_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var result []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.BranchID, &s.CustomerID, &s.Type, &s.Status,
			&s.TotalCents, &s.CreatedBy, &s.CreatedAt, &s.CancelledBy, &s.CancelledAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}
