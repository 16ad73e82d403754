package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/application/usecase"
)

// StockHandler expone la consulta de existencias por sucursal (protegido,
// solo lectura).
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Get devuelve la existencia de un producto en la sucursal del token.
func (h *StockHandler) Get(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	stock, err := h.uc.Get(c.Params("productId"), branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id": stock.ProductID,
		"branch_id":  stock.BranchID,
		"quantity":   stock.Quantity,
		"min_stock":  stock.MinStock,
		"max_stock":  stock.MaxStock,
	})
}

// List devuelve las existencias de la sucursal del token.
func (h *StockHandler) List(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	stocks, err := h.uc.ListByBranch(branchID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]fiber.Map, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, fiber.Map{
			"product_id": s.ProductID,
			"quantity":   s.Quantity,
			"min_stock":  s.MinStock,
			"max_stock":  s.MaxStock,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "stock": out})
}
