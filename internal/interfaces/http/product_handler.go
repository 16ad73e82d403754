package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/application/units"
	"github.com/jpabloc/gestion-comercial/internal/application/usecase"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
)

// ProductHandler maneja el catálogo de productos y sus unidades registradas
// (protegido).
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	resolver *units.Resolver
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase, resolver *units.Resolver) *ProductHandler {
	return &ProductHandler{uc: uc, resolver: resolver}
}

// Create registra un producto del catálogo.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(productToResponse(product))
}

// GetByID devuelve un producto.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productToResponse(product))
}

// Update modifica un producto.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(productToResponse(product))
}

// List devuelve el catálogo paginado.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	list, err := h.uc.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, productToResponse(p))
	}
	return c.JSON(fiber.Map{"total": len(out), "products": out})
}

// RegisterUnit registra una unidad alternativa de compra/venta para el
// producto, con su factor hacia la unidad base.
func (h *ProductHandler) RegisterUnit(c *fiber.Ctx) error {
	var in dto.RegisterUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	conversion, err := h.resolver.Register(c.Context(), c.Params("id"), in.UnitID, in.Name, in.UnitType, in.Factor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      conversion.ID,
		"unit_id": conversion.UnitID,
		"factor":  conversion.Factor,
	})
}

// ListUnits devuelve las unidades registradas del producto.
func (h *ProductHandler) ListUnits(c *fiber.Ctx) error {
	conversions, err := h.resolver.ListByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]fiber.Map, 0, len(conversions))
	for _, u := range conversions {
		out = append(out, fiber.Map{
			"id":        u.ID,
			"unit_id":   u.UnitID,
			"name":      u.Name,
			"unit_type": u.UnitType,
			"factor":    u.Factor,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "units": out})
}

func productToResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		CostCents:  p.CostCents,
		BaseUnit:   p.BaseUnit,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}
}
