package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jpabloc/gestion-comercial/internal/application/credits"
	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
)

// CreditHandler maneja las peticiones HTTP de cuentas de crédito y abonos
// (protegido).
type CreditHandler struct {
	uc *credits.CreditUseCase
}

// NewCreditHandler construye el handler de créditos.
func NewCreditHandler(uc *credits.CreditUseCase) *CreditHandler {
	return &CreditHandler{uc: uc}
}

// ApplyPayment registra un abono parcial o total contra una cuenta.
func (h *CreditHandler) ApplyPayment(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	account, err := h.uc.ApplyPayment(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(accountToResponse(account))
}

// GetAccount devuelve el estado de una cuenta de crédito.
func (h *CreditHandler) GetAccount(c *fiber.Ctx) error {
	account, err := h.uc.GetAccount(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(accountToResponse(account))
}

// ListPayments devuelve el historial de abonos de una cuenta.
func (h *CreditHandler) ListPayments(c *fiber.Ctx) error {
	payments, err := h.uc.ListPayments(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CreditPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.CreditPaymentResponse{
			ID:          p.ID,
			AmountCents: p.AmountCents,
			Method:      p.Method,
			Notes:       p.Notes,
			CreatedAt:   p.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "payments": out})
}

// ListByCounterparty devuelve las cuentas de un cliente o proveedor.
// ?open=true limita a cuentas con saldo.
func (h *CreditHandler) ListByCounterparty(c *fiber.Ctx) error {
	onlyOpen := c.QueryBool("open", false)
	accounts, err := h.uc.ListByCounterparty(c.Params("counterpartyId"), onlyOpen)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CreditAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountToResponse(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "accounts": out})
}

func accountToResponse(a *entity.CreditAccount) dto.CreditAccountResponse {
	return dto.CreditAccountResponse{
		ID:             a.ID,
		Type:           a.Type,
		BranchID:       a.BranchID,
		TransactionID:  a.TransactionID,
		CounterpartyID: a.CounterpartyID,
		TotalCents:     a.TotalCents,
		PaidCents:      a.PaidCents,
		BalanceCents:   a.BalanceCents,
		Status:         a.Status,
		CreatedAt:      a.CreatedAt,
	}
}
