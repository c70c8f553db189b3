package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	syncapp "github.com/jhoicas/autocars-api/internal/application/sync"
)

// CustomerHandler CRUD del embudo de clientes.
type CustomerHandler struct {
	sessions *syncapp.Manager
}

// NewCustomerHandler construye el handler de clientes.
func NewCustomerHandler(sessions *syncapp.Manager) *CustomerHandler {
	return &CustomerHandler{sessions: sessions}
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Customer
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	ds, err := snapshotFor(c, h.sessions)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ds.Customers)
}

// Create godoc
// @Summary      Agregar cliente
// @Description  Solo el nombre es obligatorio; el status vacío arranca en "Lead".
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CustomerRequest  true  "datos del cliente"
// @Success      201   {object}  entity.Customer
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	cust := in.ToEntity(uuid.New().String())

	router, err := h.sessions.Router(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := router.AddCustomer(c.Context(), cust); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cust)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "ID del cliente"
// @Param        body  body  dto.CustomerRequest  true  "datos del cliente"
// @Success      200   {object}  entity.Customer
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	cust := in.ToEntity(c.Params("id"))

	router, err := h.sessions.Router(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := router.UpdateCustomer(c.Context(), cust); err != nil {
		return respondError(c, err)
	}
	return c.JSON(cust)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Description  Las ventas que lo referencian quedan con la referencia colgante.
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	router, err := h.sessions.Router(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := router.RemoveCustomer(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{OK: true})
}
