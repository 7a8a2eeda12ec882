package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lachilena/empanaderia-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre el libro de pedidos.
// Los agregados van en NUMERIC y llegan como shopspring/decimal vía el codec del pool.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesSummary agrega cantidad de pedidos, ingresos y ticket promedio del período.
func (r *AnalyticsRepo) GetSalesSummary(ctx context.Context, start, end time.Time) (*repository.SalesSummaryResult, error) {
	const query = `
	SELECT
	    COUNT(*)                                  AS order_count,
	    COALESCE(SUM(total), 0)::NUMERIC          AS total_revenue,
	    COALESCE(AVG(total), 0)::NUMERIC(12,2)    AS average_ticket
	FROM orders
	WHERE created_at BETWEEN $1 AND $2`

	var out repository.SalesSummaryResult
	err := r.pool.QueryRow(ctx, query, start, end).Scan(
		&out.OrderCount, &out.TotalRevenue, &out.AverageTicket,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesSummary: %w", err)
	}
	return &out, nil
}

// GetTopProducts agrupa unidades e ingresos por producto, ordenado por unidades vendidas.
// Se agrupa por el snapshot de las líneas (product_id + name del momento de la venta),
// así los productos borrados del catálogo siguen apareciendo en el histórico.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    i.product_id,
	    i.name,
	    SUM(i.quantity)                           AS units_sold,
	    SUM(i.price * i.quantity)::NUMERIC        AS revenue
	FROM order_items i
	JOIN orders o ON o.id = i.order_id
	WHERE o.created_at BETWEEN $1 AND $2
	GROUP BY i.product_id, i.name
	ORDER BY units_sold DESC, revenue DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		var revenue decimal.Decimal
		if err := rows.Scan(&row.ProductID, &row.Name, &row.UnitsSold, &revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		row.Revenue = revenue
		results = append(results, row)
	}
	return results, rows.Err()
}
