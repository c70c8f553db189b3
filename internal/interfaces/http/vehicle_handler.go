package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	syncapp "github.com/jhoicas/autocars-api/internal/application/sync"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
	"github.com/jhoicas/autocars-api/internal/domain/finance"
)

// VehicleHandler CRUD del inventario de vehículos.
type VehicleHandler struct {
	sessions *syncapp.Manager
}

// NewVehicleHandler construye el handler de vehículos.
func NewVehicleHandler(sessions *syncapp.Manager) *VehicleHandler {
	return &VehicleHandler{sessions: sessions}
}

// List godoc
// @Summary      Listar vehículos
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Vehicle
// @Router       /api/vehicles [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	ds, err := snapshotFor(c, h.sessions)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ds.Vehicles)
}

// Create godoc
// @Summary      Agregar vehículo
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.VehicleRequest  true  "datos del vehículo"
// @Success      201   {object}  entity.Vehicle
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/vehicles [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var in dto.VehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Make == "" || in.Model == "" || in.Year == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "make, model y year son requeridos"})
	}
	v := in.ToEntity(uuid.New().String(), entity.NewTimestamp(time.Now()))

	router, err := h.sessions.Router(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := router.AddVehicle(c.Context(), v); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

// Update godoc
// @Summary      Actualizar vehículo
// @Description  La fecha de alta se conserva; el status vacío conserva el actual.
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID del vehículo"
// @Param        body  body  dto.VehicleRequest  true  "datos del vehículo"
// @Success      200   {object}  entity.Vehicle
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	var in dto.VehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	router, err := h.sessions.Router(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	ds, err := router.Snapshot()
	if err != nil {
		return respondError(c, err)
	}
	existing := ds.FindVehicle(c.Params("id"))
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vehículo no encontrado"})
	}

	v := in.ToEntity(existing.ID, existing.DateAdded)
	if in.Status == "" {
		v.Status = existing.Status
	}
	if err := router.UpdateVehicle(c.Context(), v); err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}

// Delete godoc
// @Summary      Eliminar vehículo
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del vehículo"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	router, err := h.sessions.Router(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := router.RemoveVehicle(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{OK: true})
}

// Cost godoc
// @Summary      Costo total del vehículo
// @Description  Precio de compra más los gastos ligados al vehículo.
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del vehículo"
// @Success      200  {object}  dto.VehicleCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id}/cost [get]
func (h *VehicleHandler) Cost(c *fiber.Ctx) error {
	ds, err := snapshotFor(c, h.sessions)
	if err != nil {
		return respondError(c, err)
	}
	v := ds.FindVehicle(c.Params("id"))
	if v == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vehículo no encontrado"})
	}
	return c.JSON(dto.VehicleCostResponse{
		VehicleID: v.ID,
		TotalCost: finance.VehicleTotalCost(*v, ds.Expenses),
	})
}

// snapshotFor resuelve el router de la cuenta del token y toma un snapshot.
func snapshotFor(c *fiber.Ctx, sessions *syncapp.Manager) (*entity.Dataset, error) {
	router, err := sessions.Router(GetUserID(c))
	if err != nil {
		return nil, err
	}
	return router.Snapshot()
}
