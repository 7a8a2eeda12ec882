package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult unidades e ingresos acumulados de un producto en el período.
type TopProductResult struct {
	ProductID int
	Name      string
	UnitsSold int64
	Revenue   decimal.Decimal
}

// SalesSummaryResult agregados de ventas para el tablero de administración.
type SalesSummaryResult struct {
	OrderCount    int64
	TotalRevenue  decimal.Decimal
	AverageTicket decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura sobre el libro de pedidos.
type AnalyticsRepository interface {
	GetSalesSummary(ctx context.Context, start, end time.Time) (*SalesSummaryResult, error)
	GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResult, error)
}
