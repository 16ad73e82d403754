package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jpabloc/gestion-comercial/internal/application/dto"
	"github.com/jpabloc/gestion-comercial/internal/application/usecase"
	"github.com/jpabloc/gestion-comercial/internal/domain/entity"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler de clientes.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create registra un cliente.
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customerToResponse(customer))
}

// GetByID devuelve un cliente con su deuda vigente.
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customerToResponse(customer))
}

// List devuelve los clientes paginados.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	list, err := h.uc.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, cust := range list {
		out = append(out, customerToResponse(cust))
	}
	return c.JSON(fiber.Map{"total": len(out), "customers": out})
}

func customerToResponse(cust *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:               cust.ID,
		Name:             cust.Name,
		TaxID:            cust.TaxID,
		Email:            cust.Email,
		Phone:            cust.Phone,
		CurrentDebtCents: cust.CurrentDebtCents,
	}
}
