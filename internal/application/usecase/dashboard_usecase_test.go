package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lachilena/empanaderia-api/internal/application/usecase"
	"github.com/lachilena/empanaderia-api/internal/domain/repository"
)

// stubAnalyticsRepo devuelve agregados fijos y registra la ventana consultada.
type stubAnalyticsRepo struct {
	summary    repository.SalesSummaryResult
	top        []repository.TopProductResult
	start, end time.Time
}

func (s *stubAnalyticsRepo) GetSalesSummary(_ context.Context, start, end time.Time) (*repository.SalesSummaryResult, error) {
	s.start, s.end = start, end
	cp := s.summary
	return &cp, nil
}

func (s *stubAnalyticsRepo) GetTopProducts(_ context.Context, _, _ time.Time, limit int) ([]repository.TopProductResult, error) {
	if len(s.top) > limit {
		return s.top[:limit], nil
	}
	return s.top, nil
}

func TestSummary_CalculaParticipacionPorProducto(t *testing.T) {
	repo := &stubAnalyticsRepo{
		summary: repository.SalesSummaryResult{
			OrderCount:    4,
			TotalRevenue:  decimal.NewFromInt(20000),
			AverageTicket: decimal.NewFromInt(5000),
		},
		top: []repository.TopProductResult{
			{ProductID: 1, Name: "Empanada de Pino", UnitsSold: 6, Revenue: decimal.NewFromInt(15000)},
			{ProductID: 2, Name: "Empanada de Queso", UnitsSold: 2, Revenue: decimal.NewFromInt(5000)},
		},
	}
	uc := usecase.NewDashboardUseCase(repo)

	out, err := uc.Summary(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, out.TopProducts, 2)

	// 15000/20000 = 75%, 5000/20000 = 25%.
	assert.True(t, out.TopProducts[0].SharePct.Equal(decimal.NewFromInt(75)),
		"share esperado 75, obtenido %s", out.TopProducts[0].SharePct)
	assert.True(t, out.TopProducts[1].SharePct.Equal(decimal.NewFromInt(25)),
		"share esperado 25, obtenido %s", out.TopProducts[1].SharePct)
	assert.Equal(t, int64(4), out.OrderCount)
}

func TestSummary_SinVentas_NoDividePorCero(t *testing.T) {
	repo := &stubAnalyticsRepo{
		summary: repository.SalesSummaryResult{},
		top: []repository.TopProductResult{
			{ProductID: 1, Name: "Empanada de Pino", UnitsSold: 0, Revenue: decimal.Zero},
		},
	}
	uc := usecase.NewDashboardUseCase(repo)

	out, err := uc.Summary(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, out.TopProducts, 1)
	assert.True(t, out.TopProducts[0].SharePct.IsZero())
}

func TestSummary_AjustaElRangoDeDias(t *testing.T) {
	repo := &stubAnalyticsRepo{summary: repository.SalesSummaryResult{}}
	uc := usecase.NewDashboardUseCase(repo)

	out, err := uc.Summary(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, out.Days, "days<=0 usa el default de 30")

	out, err = uc.Summary(context.Background(), 9999)
	require.NoError(t, err)
	assert.Equal(t, 365, out.Days, "el rango se acota a un año")

	// La ventana consultada debe corresponder a los días pedidos.
	_, err = uc.Summary(context.Background(), 7)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), repo.start, time.Minute)
}
