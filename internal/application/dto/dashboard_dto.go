package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autocars-api/internal/domain/finance"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Todas las cifras se recalculan desde las colecciones en memoria en cada
// evaluación; nada se materializa.
type DashboardSummaryDTO struct {
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`        // suma de salePrice
	SalesProfit         decimal.Decimal `json:"salesProfit"`         // suma de profit congelado
	TotalExpenses       decimal.Decimal `json:"totalExpenses"`       // todos los gastos
	MaintenanceExpenses decimal.Decimal `json:"maintenanceExpenses"` // solo "Manutenção"
	GrossProfit         decimal.Decimal `json:"grossProfit"`
	NetProfit           decimal.Decimal `json:"netProfit"`
	EfficiencyRatio     decimal.Decimal `json:"efficiencyRatio"` // neto/bruto × 100, 0 si bruto ≤ 0
	TargetMargin        decimal.Decimal `json:"targetMargin"`    // meta del perfil, para la barra del dashboard
}

// MonthlySeriesDTO respuesta de GET /api/dashboard/monthly: ventana fija de
// 6 meses anclada en hoy, en orden cronológico.
type MonthlySeriesDTO struct {
	Points []finance.MonthPoint `json:"points"`
}
