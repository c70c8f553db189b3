package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	syncapp "github.com/jhoicas/autocars-api/internal/application/sync"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// unknownLabel etiqueta para referencias colgantes en los listados.
const unknownLabel = "desconocido"

// SaleHandler registro y listado de ventas.
type SaleHandler struct {
	sessions *syncapp.Manager
}

// NewSaleHandler construye el handler de ventas.
func NewSaleHandler(sessions *syncapp.Manager) *SaleHandler {
	return &SaleHandler{sessions: sessions}
}

// List godoc
// @Summary      Listar ventas
// @Description  Resuelve etiquetas de vehículo y cliente; referencias colgantes salen como "desconocido".
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.SaleView
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	ds, err := snapshotFor(c, h.sessions)
	if err != nil {
		return respondError(c, err)
	}
	views := make([]dto.SaleView, 0, len(ds.Sales))
	for _, s := range ds.Sales {
		view := dto.SaleView{Sale: s, VehicleLabel: unknownLabel, CustomerLabel: unknownLabel}
		if v := ds.FindVehicle(s.VehicleID); v != nil {
			view.VehicleLabel = fmt.Sprintf("%s %s (%d)", v.Make, v.Model, v.Year)
		}
		if cust := ds.FindCustomer(s.CustomerID); cust != nil {
			view.CustomerLabel = cust.Name
		}
		views = append(views, view)
	}
	return c.JSON(views)
}

// Create godoc
// @Summary      Registrar venta
// @Description  En la misma escritura el vehículo pasa a "Vendido" y la utilidad queda congelada (salePrice − costo actual). Las referencias no se validan.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SaleRequest  true  "vehicleId, customerId, salePrice, date"
// @Success      201   {object}  entity.Sale
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.VehicleID == "" || in.CustomerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "vehicleId y customerId son requeridos"})
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha no reconocida"})
	}

	sale := entity.Sale{
		ID:         uuid.New().String(),
		VehicleID:  in.VehicleID,
		CustomerID: in.CustomerID,
		SalePrice:  in.SalePrice,
		Date:       date,
	}
	router, err := h.sessions.Router(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	stored, err := router.AddSale(c.Context(), sale)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  No revierte el estado "Vendido" del vehículo.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	router, err := h.sessions.Router(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := router.RemoveSale(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{OK: true})
}
