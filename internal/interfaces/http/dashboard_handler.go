package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autocars-api/internal/application/dto"
	syncapp "github.com/jhoicas/autocars-api/internal/application/sync"
	"github.com/jhoicas/autocars-api/internal/domain/finance"
)

// DashboardHandler agregados financieros del dashboard. Todo se recalcula
// desde el snapshot en memoria en cada request; nada se materializa.
type DashboardHandler struct {
	sessions *syncapp.Manager
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(sessions *syncapp.Manager) *DashboardHandler {
	return &DashboardHandler{sessions: sessions}
}

// Summary godoc
// @Summary      KPIs financieros
// @Description  Ingresos, utilidad congelada, gastos, bruto, neto y ratio de eficiencia.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	ds, err := snapshotFor(c, h.sessions)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DashboardSummaryDTO{
		TotalRevenue:        finance.TotalRevenue(ds.Sales),
		SalesProfit:         finance.SalesProfit(ds.Sales),
		TotalExpenses:       finance.TotalExpenses(ds.Expenses),
		MaintenanceExpenses: finance.MaintenanceExpenses(ds.Expenses),
		GrossProfit:         finance.GrossProfit(ds.Sales, ds.Expenses),
		NetProfit:           finance.NetProfit(ds.Sales, ds.Expenses),
		EfficiencyRatio:     finance.EfficiencyRatio(ds.Sales, ds.Expenses),
		TargetMargin:        ds.StoreProfile.TargetMargin,
	})
}

// Monthly godoc
// @Summary      Serie mensual
// @Description  Ventana fija de los últimos 6 meses anclada en hoy, en orden cronológico.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MonthlySeriesDTO
// @Router       /api/dashboard/monthly [get]
func (h *DashboardHandler) Monthly(c *fiber.Ctx) error {
	ds, err := snapshotFor(c, h.sessions)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MonthlySeriesDTO{
		Points: finance.MonthlySeries(ds.Sales, ds.Expenses, time.Now()),
	})
}
