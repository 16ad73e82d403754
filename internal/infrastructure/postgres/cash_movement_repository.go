package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

var _ repository.CashMovementRepository = (*CashMovementRepo)(nil)

// CashMovementRepo implementación de CashMovementRepository sobre PostgreSQL.
// El libro de caja es append-only: solo INSERT y SELECT.
type CashMovementRepo struct {
	q Querier
}

// NewCashMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashMovementRepository(q Querier) *CashMovementRepo {
	return &CashMovementRepo{q: q}
}

func (r *CashMovementRepo) Create(movement *entity.CashMovement) error {
	query := `
		INSERT INTO cash_movements (id, branch_id, type, category, amount_cents, reference_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.BranchID, movement.Type, movement.Category,
		movement.AmountCents, movement.ReferenceID, movement.Notes,
		movement.CreatedBy, movement.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert cash movement: %w", err)
	}
	return nil
}

// GetByReference devuelve el movimiento original de una transacción (el más
// antiguo que la referencia). Devuelve nil si el libro no lo registra.
func (r *CashMovementRepo) GetByReference(referenceID string) (*entity.CashMovement, error) {
	query := `
		SELECT id, branch_id, type, category, amount_cents, COALESCE(reference_id, ''), notes, created_by, created_at
		FROM cash_movements WHERE reference_id = $1
		ORDER BY created_at ASC LIMIT 1`
	var m entity.CashMovement
	err := r.q.QueryRow(context.Background(), query, referenceID).Scan(
		&m.ID, &m.BranchID, &m.Type, &m.Category, &m.AmountCents,
		&m.ReferenceID, &m.Notes, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash movement: %w", err)
	}
	return &m, nil
}

func (r *CashMovementRepo) ListByBranch(branchID string, filters repository.CashMovementFilters) ([]*entity.CashMovement, error) {
	query := `
		SELECT id, branch_id, type, category, amount_cents, COALESCE(reference_id, ''), notes, created_by, created_at
		FROM cash_movements WHERE branch_id = $1`
	args := []interface{}{branchID}
	if filters.Type != "" {
		args = append(args, filters.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filters.Category != "" {
		args = append(args, filters.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filters.From != nil {
		args = append(args, *filters.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filters.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()

	var result []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		if err := rows.Scan(&m.ID, &m.BranchID, &m.Type, &m.Category, &m.AmountCents,
			&m.ReferenceID, &m.Notes, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}

// BalanceByBranch calcula el saldo como suma con signo de todo el libro.
func (r *CashMovementRepo) BalanceByBranch(branchID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount_cents ELSE -amount_cents END), 0)
		FROM cash_movements WHERE branch_id = $1`
	var balance int64
	if err := r.q.QueryRow(context.Background(), query, branchID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("balance cash movements: %w", err)
	}
	return balance, nil
}
