package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/application/transfers"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
)

// TransferHandler maneja las peticiones HTTP de traslados entre sucursales
// (protegido). Cada paso del flujo es un endpoint: approve, ship, complete,
// cancel.
type TransferHandler struct {
	uc *transfers.TransferUseCase
}

// NewTransferHandler construye el handler de traslados.
func NewTransferHandler(uc *transfers.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create registra un traslado; el estado inicial depende del tipo.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transfer, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(transferToResponse(transfer))
}

// Approve pasa un traslado REQUESTED a PENDING.
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	return h.step(c, h.uc.Approve)
}

// Ship pasa un traslado PENDING a IN_TRANSIT y descuenta el stock de origen.
func (h *TransferHandler) Ship(c *fiber.Ctx) error {
	return h.step(c, h.uc.Ship)
}

// Complete pasa un traslado IN_TRANSIT a COMPLETED y acredita el destino.
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	return h.step(c, h.uc.Complete)
}

// Cancel cancela un traslado no terminal; si la mercancía estaba en tránsito
// la devuelve al origen.
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	return h.step(c, h.uc.Cancel)
}

// GetByID devuelve un traslado con sus líneas y auditoría.
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	transfer, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transferToResponse(transfer))
}

// List devuelve los traslados donde la sucursal del token es origen o destino.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	list, err := h.uc.ListByBranch(branchID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, transferToResponse(t))
	}
	return c.JSON(fiber.Map{"total": len(out), "transfers": out})
}

// step factoriza los pasos del flujo: todos reciben el ID del traslado y el
// usuario que ejecuta, y devuelven el traslado en su nuevo estado.
func (h *TransferHandler) step(c *fiber.Ctx, fn func(ctx context.Context, transferID, userID string) (*entity.Transfer, error)) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	transfer, err := fn(c.Context(), c.Params("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transferToResponse(transfer))
}

func transferToResponse(t *entity.Transfer) dto.TransferResponse {
	resp := dto.TransferResponse{
		ID:           t.ID,
		FromBranchID: t.FromBranchID,
		ToBranchID:   t.ToBranchID,
		Type:         t.Type,
		Status:       t.Status,
		Notes:        t.Notes,
		CreatedAt:    t.CreatedAt,
		ApprovedAt:   t.ApprovedAt,
		ShippedAt:    t.ShippedAt,
		CompletedAt:  t.CompletedAt,
		CancelledAt:  t.CancelledAt,
	}
	for _, it := range t.Items {
		resp.Items = append(resp.Items, dto.TransferItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return resp
}
