package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/application/usecase"
	"github.com/jpabloc/gestion-comercial/internal/domain/repository"
)

// CashHandler expone la consulta del libro de caja (protegido, solo lectura:
// los movimientos solo los escriben las operaciones transaccionales).
type CashHandler struct {
	uc *usecase.CashUseCase
}

// NewCashHandler construye el handler de caja.
func NewCashHandler(uc *usecase.CashUseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// List devuelve los movimientos de caja de la sucursal del token, con
// filtros opcionales type, category, from, to (RFC 3339).
func (h *CashHandler) List(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	filters := repository.CashMovementFilters{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Limit:    c.QueryInt("limit", 50),
		Offset:   c.QueryInt("offset", 0),
	}
	if raw := c.Query("from"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC 3339"})
		}
		filters.From = &ts
	}
	if raw := c.Query("to"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC 3339"})
		}
		filters.To = &ts
	}
	movements, err := h.uc.ListByBranch(branchID, filters)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CashMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.CashMovementResponse{
			ID:          m.ID,
			BranchID:    m.BranchID,
			Type:        m.Type,
			Category:    m.Category,
			AmountCents: m.AmountCents,
			ReferenceID: m.ReferenceID,
			Notes:       m.Notes,
			CreatedAt:   m.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// Balance devuelve el saldo de caja de la sucursal del token.
func (h *CashHandler) Balance(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	balance, err := h.uc.Balance(branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CashBalanceResponse{BranchID: branchID, BalanceCents: balance})
}
