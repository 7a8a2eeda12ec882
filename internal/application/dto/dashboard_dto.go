package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto con más unidades vendidas en el período.
type TopProductDTO struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	UnitsSold int64           `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
	SharePct  decimal.Decimal `json:"share_pct"` // % de los ingresos del período
}

// DashboardResponse resumen de ventas para administración.
type DashboardResponse struct {
	Days          int             `json:"days"`
	OrderCount    int64           `json:"order_count"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	TopProducts   []TopProductDTO `json:"top_products"`
}
