package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, from_branch_id, to_branch_id, type, status, notes,
	requested_by, created_at,
	COALESCE(approved_by, ''), approved_at,
	COALESCE(shipped_by, ''), shipped_at,
	COALESCE(completed_by, ''), completed_at,
	COALESCE(cancelled_by, ''), cancelled_at`

// Create persiste la cabecera del traslado y sus líneas.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	ctx := context.Background()
	query := `
		INSERT INTO transfers (id, from_branch_id, to_branch_id, type, status, notes, requested_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.FromBranchID, transfer.ToBranchID, transfer.Type,
		transfer.Status, transfer.Notes, transfer.RequestedBy, transfer.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	itemQuery := `
		INSERT INTO transfer_items (id, transfer_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for _, item := range transfer.Items {
		if _, err := r.q.Exec(ctx, itemQuery, item.ID, item.TransferID, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el traslado con sus líneas. Devuelve nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	ctx := context.Background()
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	var t entity.Transfer
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.FromBranchID, &t.ToBranchID, &t.Type, &t.Status, &t.Notes,
		&t.RequestedBy, &t.CreatedAt,
		&t.ApprovedBy, &t.ApprovedAt,
		&t.ShippedBy, &t.ShippedAt,
		&t.CompletedBy, &t.CompletedAt,
		&t.CancelledBy, &t.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, transfer_id, product_id, quantity FROM transfer_items WHERE transfer_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		t.Items = append(t.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateStatus persiste el estado actual junto con todos los campos de
// auditoría del traslado.
func (r *TransferRepo) UpdateStatus(transfer *entity.Transfer) error {
	query := `
		UPDATE transfers
		SET status = $2,
		    approved_by = NULLIF($3, ''), approved_at = $4,
		    shipped_by = NULLIF($5, ''), shipped_at = $6,
		    completed_by = NULLIF($7, ''), completed_at = $8,
		    cancelled_by = NULLIF($9, ''), cancelled_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Status,
		transfer.ApprovedBy, transfer.ApprovedAt,
		transfer.ShippedBy, transfer.ShippedAt,
		transfer.CompletedBy, transfer.CompletedAt,
		transfer.CancelledBy, transfer.CancelledAt)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update transfer status: traslado %s no existe", transfer.ID)
	}
	return nil
}

// ListByBranch lista traslados donde la sucursal es origen o destino.
func (r *TransferRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + `
		FROM transfers WHERE from_branch_id = $1 OR to_branch_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var result []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(
			&t.ID, &t.FromBranchID, &t.ToBranchID, &t.Type, &t.Status, &t.Notes,
			&t.RequestedBy, &t.CreatedAt,
			&t.ApprovedBy, &t.ApprovedAt,
			&t.ShippedBy, &t.ShippedAt,
			&t.CompletedBy, &t.CompletedAt,
			&t.CancelledBy, &t.CancelledAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}
