package postgres

import (
	"context"
	"fmt"

	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

var _ repository.CreditPaymentRepository = (*CreditPaymentRepo)(nil)

// CreditPaymentRepo implementación de CreditPaymentRepository sobre PostgreSQL.
// Los abonos son append-only: no hay update ni delete.
type CreditPaymentRepo struct {
	q Querier
}

// NewCreditPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditPaymentRepository(q Querier) *CreditPaymentRepo {
	return &CreditPaymentRepo{q: q}
}

func (r *CreditPaymentRepo) Create(payment *entity.CreditPayment) error {
	query := `
		INSERT INTO credit_payments (id, credit_account_id, amount_cents, method, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.CreditAccountID, payment.AmountCents,
		payment.Method, payment.Notes, payment.CreatedBy, payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert credit payment: %w", err)
	}
	return nil
}

func (r *CreditPaymentRepo) ListByAccount(creditAccountID string) ([]*entity.CreditPayment, error) {
	query := `
		SELECT id, credit_account_id, amount_cents, method, notes, created_by, created_at
		FROM credit_payments WHERE credit_account_id = $1
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, creditAccountID)
	if err != nil {
		return nil, fmt.Errorf("list credit payments: %w", err)
	}
	defer rows.Close()

	var result []*entity.CreditPayment
	for rows.Next() {
		var p entity.CreditPayment
		if err := rows.Scan(&p.ID, &p.CreditAccountID, &p.AmountCents,
			&p.Method, &p.Notes, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan credit payment: %w", err)
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

func (r *CreditPaymentRepo) CountByAccount(creditAccountID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM credit_payments WHERE credit_account_id = $1`,
		creditAccountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count credit payments: %w", err)
	}
	return count, nil
}
