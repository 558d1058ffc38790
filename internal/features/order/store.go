package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, order *Order) error {
	products, err := json.Marshal(order.Products)
	if err != nil {
		return fmt.Errorf(
			"failed to marshal order products in order store: %w",
			err,
		)
	}

	query := `INSERT INTO orders(order_id, buyer_id, products, payment, status, created_at)
		VALUES($1, $2, $3, $4, $5, $6)`

	_, err = s.db.ExecContext(
		ctx,
		query,
		order.OrderID,
		order.BuyerID,
		products,
		[]byte(order.Payment),
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to insert order in order store: %w",
			err,
		)
	}

	return nil
}

const orderColumns = `
	o.order_id, o.buyer_id, o.products, o.payment, o.status, o.created_at,
	u.user_id, u.name`

func (s *Store) findByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	query := `SELECT` + orderColumns + `
		FROM orders o LEFT JOIN users u ON u.user_id = o.buyer_id
		WHERE o.order_id = $1`

	orders, err := s.queryOrders(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	return orders[0], nil
}

func (s *Store) findByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*Order, error) {
	query := `SELECT` + orderColumns + `
		FROM orders o LEFT JOIN users u ON u.user_id = o.buyer_id
		WHERE o.buyer_id = $1
		ORDER BY o.created_at DESC`

	return s.queryOrders(ctx, query, buyerID)
}

func (s *Store) findAll(ctx context.Context) ([]*Order, error) {
	query := `SELECT` + orderColumns + `
		FROM orders o LEFT JOIN users u ON u.user_id = o.buyer_id
		ORDER BY o.created_at DESC`

	return s.queryOrders(ctx, query)
}

func (s *Store) updateStatus(ctx context.Context, orderID uuid.UUID, status Status) (bool, error) {
	query := `UPDATE orders SET status = $1 WHERE order_id = $2`

	res, err := s.db.ExecContext(ctx, query, status, orderID)
	if err != nil {
		return false, fmt.Errorf(
			"failed to update order status in order store: %w",
			err,
		)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf(
			"failed to read rows affected in order store: %w",
			err,
		)
	}

	return affected > 0, nil
}

func (s *Store) queryOrders(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to query orders from order store: %w",
			err,
		)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		order, err := scanRowIntoOrder(rows)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan order from order store: %w",
				err,
			)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func scanRowIntoOrder(rows *sql.Rows) (*Order, error) {
	var order Order
	var products, payment []byte
	var buyerID uuid.NullUUID
	var buyerName sql.NullString

	err := rows.Scan(
		&order.OrderID,
		&order.BuyerID,
		&products,
		&payment,
		&order.Status,
		&order.CreatedAt,
		&buyerID,
		&buyerName,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(products, &order.Products); err != nil {
		return nil, err
	}
	order.Payment = json.RawMessage(payment)

	if buyerID.Valid {
		order.Buyer = &Buyer{
			UserID: buyerID.UUID,
			Name:   buyerName.String,
		}
	}

	return &order, nil
}
