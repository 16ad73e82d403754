package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera y sus líneas.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchases (id, branch_id, supplier_id, type, status, total_cents, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.BranchID, purchase.SupplierID, purchase.Type,
		purchase.Status, purchase.TotalCents, purchase.CreatedBy, purchase.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	itemQuery := `
		INSERT INTO purchase_items (id, purchase_id, product_id, unit_id, quantity, base_quantity, unit_cost_cents, subtotal_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, item := range purchase.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.PurchaseID, item.ProductID, item.UnitID,
			item.Quantity, item.BaseQuantity, item.UnitCostCents, item.SubtotalCents)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la compra con sus líneas. Devuelve nil si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	ctx := context.Background()
	query := `
		SELECT id, branch_id, supplier_id, type, status, total_cents,
		       created_by, created_at, COALESCE(cancelled_by, ''), cancelled_at
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.BranchID, &p.SupplierID, &p.Type, &p.Status, &p.TotalCents,
		&p.CreatedBy, &p.CreatedAt, &p.CancelledBy, &p.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	itemQuery := `
		SELECT id, purchase_id, product_id, COALESCE(unit_id, ''), quantity, base_quantity, unit_cost_cents, subtotal_cents
		FROM purchase_items WHERE purchase_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.UnitID,
			&it.Quantity, &it.BaseQuantity, &it.UnitCostCents, &it.SubtotalCents); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		p.Items = append(p.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateStatus cambia el estado de la compra; al cancelar estampa quién y cuándo.
func (r *PurchaseRepo) UpdateStatus(id, status, cancelledBy string) error {
	query := `
		UPDATE purchases
		SET status = $2,
		    cancelled_by = CASE WHEN $2 = 'CANCELLED' THEN $3 ELSE cancelled_by END,
		    cancelled_at = CASE WHEN $2 = 'CANCELLED' THEN now() ELSE cancelled_at END
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, cancelledBy)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update purchase status: compra %s no existe", id)
	}
	return nil
}

// ListByBranch lista compras de una sucursal (solo cabeceras).
func (r *PurchaseRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, branch_id, supplier_id, type, status, total_cents,
		       created_by, created_at, COALESCE(cancelled_by, ''), cancelled_at
		FROM purchases WHERE branch_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var result []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.BranchID, &p.SupplierID, &p.Type, &p.Status,
			&p.TotalCents, &p.CreatedBy, &p.CreatedAt, &p.CancelledBy, &p.CancelledAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}
