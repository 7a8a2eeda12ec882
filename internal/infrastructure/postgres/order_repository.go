package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lachilena/empanaderia-api/internal/domain/entity"
	"github.com/lachilena/empanaderia-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Usa el pool directamente porque Create abre su propia transacción
// (cabecera + líneas en un solo commit).
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository construye el adaptador del libro de pedidos.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create persiste el pedido y sus líneas en una transacción. El pedido y sus
// ítems son un solo documento lógico: o se graban todos o ninguno.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, customer_email, total, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		order.ID, order.CustomerEmail, order.Total, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, it := range order.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (order_id, product_id, name, price, quantity)
			 VALUES ($1, $2, $3, $4, $5)`,
			order.ID, it.ProductID, it.Name, it.Price, it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido con sus líneas. Devuelve nil, nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.pool.QueryRow(ctx,
		`SELECT id, customer_email, total, status, created_at FROM orders WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.CustomerEmail, &o.Total, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.itemsFor(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

// FindByCustomer devuelve los pedidos de un cliente, más nuevos primero.
func (r *OrderRepo) FindByCustomer(ctx context.Context, email string) ([]*entity.Order, error) {
	return r.queryOrders(ctx,
		`SELECT id, customer_email, total, status, created_at
		 FROM orders WHERE customer_email = $1 ORDER BY created_at DESC`,
		email,
	)
}

// ListRecent devuelve los pedidos más nuevos primero, hasta limit.
func (r *OrderRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Order, error) {
	return r.queryOrders(ctx,
		`SELECT id, customer_email, total, status, created_at
		 FROM orders ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
}

// SetStatus cambia el estado del pedido. matched=false si el id no existe.
func (r *OrderRepo) SetStatus(ctx context.Context, id, status string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return false, fmt.Errorf("set order status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *OrderRepo) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	var ids []string
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CustomerEmail, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		o.Items = items[o.ID]
	}
	return list, nil
}

// itemsFor trae las líneas de varios pedidos en una sola consulta.
func (r *OrderRepo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]entity.OrderItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT order_id, product_id, name, price, quantity
		 FROM order_items WHERE order_id = ANY($1) ORDER BY id`,
		orderIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID string
		var it entity.OrderItem
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}
