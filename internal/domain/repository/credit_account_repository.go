package repository

import "github.com/jpabloc/gestion-comercial/internal/domain/entity"

// CreditAccountRepository define el puerto de persistencia para cuentas de
// crédito (CXC/CPP). Delete solo se usa en cancelaciones de la transacción
// de origen; los abonos nunca borran la cuenta.
type CreditAccountRepository interface {
	Create(account *entity.CreditAccount) error
	GetByID(id string) (*entity.CreditAccount, error)
	// GetByIDForUpdate bloquea la fila de la cuenta durante un abono.
	GetByIDForUpdate(id string) (*entity.CreditAccount, error)
	GetByTransaction(transactionID string) (*entity.CreditAccount, error)
	UpdateAmounts(account *entity.CreditAccount) error
	Delete(id string) error
	ListByCounterparty(counterpartyID string, onlyOpen bool) ([]*entity.CreditAccount, error)
}
