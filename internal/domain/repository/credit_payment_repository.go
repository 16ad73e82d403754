package repository

import "github.com/jpabloc/gestion-comercial/internal/domain/entity"

// CreditPaymentRepository define el puerto para abonos (append-only).
type CreditPaymentRepository interface {
	Create(payment *entity.CreditPayment) error
	ListByAccount(creditAccountID string) ([]*entity.CreditPayment, error)
	CountByAccount(creditAccountID string) (int, error)
}
