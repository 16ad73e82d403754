package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

var _ repository.CreditAccountRepository = (*CreditAccountRepo)(nil)

// CreditAccountRepo implementación de CreditAccountRepository sobre PostgreSQL.
type CreditAccountRepo struct {
	q Querier
}

// NewCreditAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditAccountRepository(q Querier) *CreditAccountRepo {
	return &CreditAccountRepo{q: q}
}

const creditAccountColumns = `id, type, branch_id, transaction_id, counterparty_id,
	total_cents, paid_cents, balance_cents, status, created_at, updated_at`

func (r *CreditAccountRepo) Create(account *entity.CreditAccount) error {
	query := `
		INSERT INTO credit_accounts (id, type, branch_id, transaction_id, counterparty_id,
			total_cents, paid_cents, balance_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Type, account.BranchID, account.TransactionID,
		account.CounterpartyID, account.TotalCents, account.PaidCents,
		account.BalanceCents, account.Status, account.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert credit account: %w", err)
	}
	return nil
}

func (r *CreditAccountRepo) GetByID(id string) (*entity.CreditAccount, error) {
	query := `SELECT ` + creditAccountColumns + ` FROM credit_accounts WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate bloquea la fila mientras dura la transacción del abono.
func (r *CreditAccountRepo) GetByIDForUpdate(id string) (*entity.CreditAccount, error) {
	query := `SELECT ` + creditAccountColumns + ` FROM credit_accounts WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *CreditAccountRepo) GetByTransaction(transactionID string) (*entity.CreditAccount, error) {
	query := `SELECT ` + creditAccountColumns + ` FROM credit_accounts WHERE transaction_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, transactionID))
}

func (r *CreditAccountRepo) scanOne(row pgx.Row) (*entity.CreditAccount, error) {
	var a entity.CreditAccount
	err := row.Scan(&a.ID, &a.Type, &a.BranchID, &a.TransactionID, &a.CounterpartyID,
		&a.TotalCents, &a.PaidCents, &a.BalanceCents, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit account: %w", err)
	}
	return &a, nil
}

// UpdateAmounts persiste paid/balance/status tras aplicar un abono.
func (r *CreditAccountRepo) UpdateAmounts(account *entity.CreditAccount) error {
	query := `
		UPDATE credit_accounts
		SET paid_cents = $2, balance_cents = $3, status = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		account.ID, account.PaidCents, account.BalanceCents, account.Status)
	if err != nil {
		return fmt.Errorf("update credit account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update credit account: cuenta %s no existe", account.ID)
	}
	return nil
}

// Delete elimina la cuenta; solo se invoca al cancelar la transacción origen.
func (r *CreditAccountRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM credit_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete credit account: %w", err)
	}
	return nil
}

func (r *CreditAccountRepo) ListByCounterparty(counterpartyID string, onlyOpen bool) ([]*entity.CreditAccount, error) {
	query := `SELECT ` + creditAccountColumns + ` FROM credit_accounts WHERE counterparty_id = $1`
	if onlyOpen {
		query += ` AND status <> 'PAGADO'`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, counterpartyID)
	if err != nil {
		return nil, fmt.Errorf("list credit accounts: %w", err)
	}
	defer rows.Close()

	var result []*entity.CreditAccount
	for rows.Next() {
		var a entity.CreditAccount
		if err := rows.Scan(&a.ID, &a.Type, &a.BranchID, &a.TransactionID, &a.CounterpartyID,
			&a.TotalCents, &a.PaidCents, &a.BalanceCents, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan credit account: %w", err)
		}
		result = append(result, &a)
	}
	return result, rows.Err()
}
