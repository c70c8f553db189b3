package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	syncapp "github.com/jhoicas/autocars-api/internal/application/sync"
	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// ExpenseHandler registro y listado de gastos.
type ExpenseHandler struct {
	sessions *syncapp.Manager
}

// NewExpenseHandler construye el handler de gastos.
func NewExpenseHandler(sessions *syncapp.Manager) *ExpenseHandler {
	return &ExpenseHandler{sessions: sessions}
}

// List godoc
// @Summary      Listar gastos
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Expense
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	ds, err := snapshotFor(c, h.sessions)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ds.Expenses)
}

// Create godoc
// @Summary      Registrar gasto
// @Description  vehicleId es opcional; cuando viene, el gasto suma al costo total de ese vehículo.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ExpenseRequest  true  "description, category, amount, date, vehicleId"
// @Success      201   {object}  entity.Expense
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.ExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Description == "" || in.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "description y category son requeridos"})
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha no reconocida"})
	}
	e := in.ToEntity(uuid.New().String(), date)

	router, err := h.sessions.Router(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := router.AddExpense(c.Context(), e); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

// Delete godoc
// @Summary      Eliminar gasto
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del gasto"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	router, err := h.sessions.Router(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := router.RemoveExpense(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{OK: true})
}

// parseDate interpreta la fecha del request; vacía = ahora. Acepta los mismos
// formatos que el documento de respaldo (RFC3339 y "2006-01-02").
func parseDate(s string) (entity.Timestamp, error) {
	if s == "" {
		return entity.NewTimestamp(time.Now()), nil
	}
	var ts entity.Timestamp
	if err := ts.UnmarshalJSON([]byte(`"` + s + `"`)); err != nil {
		return entity.Timestamp{}, err
	}
	return ts, nil
}
