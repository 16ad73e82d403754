package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/application/purchases"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
)

// PurchaseHandler maneja las peticiones HTTP de compras (protegido).
type PurchaseHandler struct {
	uc *purchases.PurchaseUseCase
}

// NewPurchaseHandler construye el handler de compras.
func NewPurchaseHandler(uc *purchases.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create registra una compra a proveedor en la sucursal del token.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	userID := GetUserID(c)
	if branchID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	purchase, err := h.uc.CreatePurchase(c.Context(), branchID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(purchaseToResponse(purchase))
}

// Cancel revierte una compra: retira el stock ingresado y compensa caja.
// Rechaza la reversión si la cuenta por pagar ya tiene abonos.
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.CancelPurchase(c.Context(), c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "compra cancelada"})
}

// GetByID devuelve una compra con sus líneas.
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	purchase, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchaseToResponse(purchase))
}

// List devuelve las compras de la sucursal del token.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
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
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, purchaseToResponse(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "purchases": out})
}

func purchaseToResponse(p *entity.Purchase) dto.PurchaseResponse {
	resp := dto.PurchaseResponse{
		ID:          p.ID,
		BranchID:    p.BranchID,
		SupplierID:  p.SupplierID,
		Type:        p.Type,
		Status:      p.Status,
		TotalCents:  p.TotalCents,
		CreatedAt:   p.CreatedAt,
		CancelledAt: p.CancelledAt,
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ProductID:     it.ProductID,
			UnitID:        it.UnitID,
			Quantity:      it.Quantity,
			BaseQuantity:  it.BaseQuantity,
			UnitCostCents: it.UnitCostCents,
			SubtotalCents: it.SubtotalCents,
		})
	}
	return resp
}
