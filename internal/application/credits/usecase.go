package credits

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/domain"
	"github.com/jpabloc/gestion-comercial/internal/domain/credit"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
	"github.com/jpabloc/gestion-comercial/pkg/metrics"
)

// CreditUseCase liquida cuentas de crédito: aplica un abono contra una cuenta
// CXC/CPP, recalcula montos y estado, registra el movimiento de caja y baja
// la deuda del cliente (CXC). El abono es append-only y nunca puede exceder
// el saldo pendiente.
type CreditUseCase struct {
	txRunner    TxRunner
	accountRepo repository.CreditAccountRepository
	paymentRepo repository.CreditPaymentRepository
}

// NewCreditUseCase construye el caso de uso. Los repos directos se usan solo
// para lecturas; las escrituras pasan por el TxRunner.
func NewCreditUseCase(
	txRunner TxRunner,
	accountRepo repository.CreditAccountRepository,
	paymentRepo repository.CreditPaymentRepository,
) *CreditUseCase {
	return &CreditUseCase{
		txRunner:    txRunner,
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
	}
}

// ApplyPayment aplica un abono. Orden fijo dentro de la tx: bloquear la
// cuenta, validar (PAGADO → ErrAlreadySettled, monto > saldo →
// ErrOverpayment), agregar el abono, recalcular montos/estado, registrar
// caja (CXC ingreso / CPP egreso) y bajar la deuda del cliente.
func (uc *CreditUseCase) ApplyPayment(ctx context.Context, userID, accountID string, in dto.ApplyPaymentRequest) (*entity.CreditAccount, error) {
	if accountID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.AmountCents <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var updated *entity.CreditAccount

	err := uc.txRunner.RunCredit(ctx, func(
		accountRepo repository.CreditAccountRepository,
		paymentRepo repository.CreditPaymentRepository,
		cashRepo repository.CashMovementRepository,
		customerRepo repository.CustomerRepository,
	) error {
		account, err := accountRepo.GetByIDForUpdate(accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrNotFound
		}
		if account.Status == entity.CreditStatusPagado {
			return domain.ErrAlreadySettled
		}
		if in.AmountCents > account.BalanceCents {
			return domain.ErrOverpayment
		}

		payment := &entity.CreditPayment{
			ID:              uuid.New().String(),
			CreditAccountID: account.ID,
			AmountCents:     in.AmountCents,
			Method:          in.Method,
			Notes:           in.Notes,
			CreatedBy:       userID,
			CreatedAt:       now,
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}

		credit.Apply(account, in.AmountCents)
		account.UpdatedAt = now
		if err := accountRepo.UpdateAmounts(account); err != nil {
			return err
		}

		// Un abono CXC es ingreso para la sucursal; uno CPP, egreso.
		movementType := entity.CashTypeIncome
		if account.Type == entity.CreditTypeCPP {
			movementType = entity.CashTypeExpense
		}
		movement := &entity.CashMovement{
			ID:          uuid.New().String(),
			BranchID:    account.BranchID,
			Type:        movementType,
			Category:    entity.CashCategoryCreditPayment,
			AmountCents: in.AmountCents,
			ReferenceID: account.ID,
			CreatedBy:   userID,
			CreatedAt:   now,
		}
		if err := cashRepo.Create(movement); err != nil {
			return err
		}

		// Solo el cliente lleva contador de deuda; la exposición CPP se
		// consulta por las cuentas abiertas del proveedor.
		if account.Type == entity.CreditTypeCXC {
			if err := customerRepo.AdjustDebt(account.CounterpartyID, -in.AmountCents); err != nil {
				return err
			}
		}

		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CreditPaymentsApplied.WithLabelValues(updated.Type).Inc()
	return updated, nil
}

// GetAccount devuelve una cuenta por ID.
func (uc *CreditUseCase) GetAccount(id string) (*entity.CreditAccount, error) {
	account, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return account, nil
}

// ListPayments devuelve los abonos de una cuenta.
func (uc *CreditUseCase) ListPayments(accountID string) ([]*entity.CreditPayment, error) {
	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return uc.paymentRepo.ListByAccount(accountID)
}

// ListByCounterparty devuelve las cuentas de un cliente o proveedor.
// onlyOpen limita a cuentas con saldo pendiente.
func (uc *CreditUseCase) ListByCounterparty(counterpartyID string, onlyOpen bool) ([]*entity.CreditAccount, error) {
	return uc.accountRepo.ListByCounterparty(counterpartyID, onlyOpen)
}
