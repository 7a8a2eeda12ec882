package usecase

import (
	"context"
	"time"

	"github.com/lachilena/empanaderia-api/internal/application/dto"
	"github.com/lachilena/empanaderia-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardUseCase resumen de ventas para administración: ingresos, cantidad de
// pedidos, ticket promedio y productos más vendidos del período.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso del tablero.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// Summary agrega las ventas de los últimos days días (mínimo 1, máximo 365).
func (uc *DashboardUseCase) Summary(ctx context.Context, days int) (*dto.DashboardResponse, error) {
	if days <= 0 {
		days = 30
	}
	if days > 365 {
		days = 365
	}
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	summary, err := uc.analyticsRepo.GetSalesSummary(ctx, start, end)
	if err != nil {
		return nil, err
	}
	top, err := uc.analyticsRepo.GetTopProducts(ctx, start, end, 5)
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	topDTOs := make([]dto.TopProductDTO, 0, len(top))
	for _, t := range top {
		var share decimal.Decimal
		if summary.TotalRevenue.GreaterThan(decimal.Zero) {
			share = t.Revenue.Div(summary.TotalRevenue).Mul(hundred).Round(2)
		}
		topDTOs = append(topDTOs, dto.TopProductDTO{
			ProductID: t.ProductID,
			Name:      t.Name,
			UnitsSold: t.UnitsSold,
			Revenue:   t.Revenue,
			SharePct:  share,
		})
	}

	return &dto.DashboardResponse{
		Days:          days,
		OrderCount:    summary.OrderCount,
		TotalRevenue:  summary.TotalRevenue,
		AverageTicket: summary.AverageTicket,
		TopProducts:   topDTOs,
	}, nil
}
