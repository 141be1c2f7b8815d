// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bonik/internal/models"
)

// OrderStore handles order and order-item database operations.
type OrderStore struct {
	db *sql.DB
}

// NewOrderStore creates a new OrderStore with the given database connection.
func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

const orderCols = `id, order_number, user_id, status, payment_method, payment_status,
       subtotal, shipping_cost, discount, total, coupon_code,
       shipping_name, shipping_phone, shipping_street, shipping_city,
       shipping_district, shipping_postal_code, notes,
       tracking_number, courier_name, order_source, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.PaymentMethod, &o.PaymentStatus,
		&o.Subtotal, &o.ShippingCost, &o.Discount, &o.Total, &o.CouponCode,
		&o.ShippingName, &o.ShippingPhone, &o.ShippingStreet, &o.ShippingCity,
		&o.ShippingDistrict, &o.ShippingPostal, &o.Notes,
		&o.TrackingNumber, &o.CourierName, &o.OrderSource, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// CreateWithItems inserts an order together with its line items in a
// single transaction. The order number is drawn from a dedicated
// sequence, so numbers are unique and roughly sequential.
func (s *OrderStore) CreateWithItems(o *models.Order, items []models.OrderItem) (*models.Order, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRow(`SELECT nextval('order_number_seq')`).Scan(&seq); err != nil {
		return nil, fmt.Errorf("next order number: %w", err)
	}
	orderNumber := fmt.Sprintf("BNK-%d", seq)

	result, err := scanOrder(tx.QueryRow(`
		INSERT INTO orders (order_number, user_id, status, payment_method, payment_status,
		                    subtotal, shipping_cost, discount, total, coupon_code,
		                    shipping_name, shipping_phone, shipping_street, shipping_city,
		                    shipping_district, shipping_postal_code, notes, order_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+orderCols,
		orderNumber, o.UserID, o.Status, o.PaymentMethod, o.PaymentStatus,
		o.Subtotal, o.ShippingCost, o.Discount, o.Total, o.CouponCode,
		o.ShippingName, o.ShippingPhone, o.ShippingStreet, o.ShippingCity,
		o.ShippingDistrict, o.ShippingPostal, o.Notes, o.OrderSource,
	))
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	for _, item := range items {
		var it models.OrderItem
		err := tx.QueryRow(`
			INSERT INTO order_items (order_id, product_id, product_name, product_image, price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, order_id, product_id, product_name, product_image, price, quantity
		`, result.ID, item.ProductID, item.ProductName, item.ProductImage, item.Price, item.Quantity).Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductImage, &it.Price, &it.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
		result.Items = append(result.Items, it)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order tx: %w", err)
	}
	return result, nil
}

// OrderFilter narrows List results.
type OrderFilter struct {
	Status string
	Search string // matches order number, name, or phone
	Limit  int
	Offset int
}

// List returns orders matching the filter, newest first, without items.
func (s *OrderStore) List(f OrderFilter) ([]models.Order, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		where = append(where, "status = "+arg(f.Status))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, "(order_number ILIKE "+p+" OR shipping_name ILIKE "+p+" OR shipping_phone ILIKE "+p+")")
	}

	query := "SELECT " + orderCols + " FROM orders"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + arg(f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// FindByID retrieves an order with its items. Returns nil if not found.
func (s *OrderStore) FindByID(id uuid.UUID) (*models.Order, error) {
	o, err := scanOrder(s.db.QueryRow("SELECT "+orderCols+" FROM orders WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order by id: %w", err)
	}
	if err := s.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

// FindByNumber retrieves an order by its customer-facing number, with items.
func (s *OrderStore) FindByNumber(number string) (*models.Order, error) {
	o, err := scanOrder(s.db.QueryRow("SELECT "+orderCols+" FROM orders WHERE order_number = $1", number))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order by number: %w", err)
	}
	if err := s.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderStore) loadItems(o *models.Order) error {
	rows, err := s.db.Query(`
		SELECT id, order_id, product_id, product_name, product_image, price, quantity
		FROM order_items WHERE order_id = $1
	`, o.ID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductImage, &it.Price, &it.Quantity); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

// UpdateStatus moves an order to a new lifecycle status.
func (s *OrderStore) UpdateStatus(id uuid.UUID, status models.OrderStatus) error {
	_, err := s.db.Exec(`
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// SetTracking records courier booking details on an order.
func (s *OrderStore) SetTracking(id uuid.UUID, courierName, trackingNumber string) error {
	_, err := s.db.Exec(`
		UPDATE orders SET courier_name = $1, tracking_number = $2, updated_at = NOW()
		WHERE id = $3
	`, courierName, trackingNumber, id)
	if err != nil {
		return fmt.Errorf("set order tracking: %w", err)
	}
	return nil
}

// UpdatePaymentStatus changes the payment state of an order.
func (s *OrderStore) UpdatePaymentStatus(id uuid.UUID, status models.PaymentStatus) error {
	_, err := s.db.Exec(`
		UPDATE orders SET payment_status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}

// Delete removes an order and, via cascade, its items.
func (s *OrderStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// Stats summarizes orders for the admin dashboard.
type Stats struct {
	TotalOrders    int `json:"total_orders"`
	PendingOrders  int `json:"pending_orders"`
	TodayOrders    int `json:"today_orders"`
	TotalRevenue   int `json:"total_revenue"`
	MonthlyRevenue int `json:"monthly_revenue"`
}

// DashboardStats computes order counts and revenue. Revenue only counts
// delivered orders; cancelled and returned orders never contribute.
func (s *OrderStore) DashboardStats(now time.Time) (*Stats, error) {
	st := &Stats{}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE created_at >= $1),
		       COALESCE(SUM(total) FILTER (WHERE status = 'delivered'), 0),
		       COALESCE(SUM(total) FILTER (WHERE status = 'delivered' AND created_at >= $2), 0)
		FROM orders
	`, dayStart, monthStart).Scan(
		&st.TotalOrders, &st.PendingOrders, &st.TodayOrders,
		&st.TotalRevenue, &st.MonthlyRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return st, nil
}
