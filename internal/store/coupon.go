// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bonik/internal/models"
)

// CouponStore handles discount coupon database operations.
type CouponStore struct {
	db *sql.DB
}

// NewCouponStore creates a new CouponStore with the given database connection.
func NewCouponStore(db *sql.DB) *CouponStore {
	return &CouponStore{db: db}
}

const couponCols = `id, code, discount_type, discount_value, min_order_amount,
       max_discount_amount, usage_limit, used_count, starts_at, expires_at,
       is_active, created_at`

func scanCoupon(row interface{ Scan(...any) error }) (*models.Coupon, error) {
	c := &models.Coupon{}
	err := row.Scan(
		&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderAmount,
		&c.MaxDiscountAmount, &c.UsageLimit, &c.UsedCount, &c.StartsAt, &c.ExpiresAt,
		&c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all coupons, newest first.
func (s *CouponStore) List() ([]models.Coupon, error) {
	rows, err := s.db.Query("SELECT " + couponCols + " FROM coupons ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []models.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}
	return coupons, rows.Err()
}

// FindByCode retrieves a coupon by its code, case-insensitively.
// Returns nil if not found.
func (s *CouponStore) FindByCode(code string) (*models.Coupon, error) {
	c, err := scanCoupon(s.db.QueryRow(
		"SELECT "+couponCols+" FROM coupons WHERE UPPER(code) = $1",
		strings.ToUpper(strings.TrimSpace(code))))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find coupon by code: %w", err)
	}
	return c, nil
}

// FindByID retrieves a coupon by its UUID. Returns nil if not found.
func (s *CouponStore) FindByID(id uuid.UUID) (*models.Coupon, error) {
	c, err := scanCoupon(s.db.QueryRow("SELECT "+couponCols+" FROM coupons WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find coupon by id: %w", err)
	}
	return c, nil
}

// Create inserts a new coupon. Codes are stored uppercase.
func (s *CouponStore) Create(c *models.Coupon) (*models.Coupon, error) {
	result, err := scanCoupon(s.db.QueryRow(`
		INSERT INTO coupons (code, discount_type, discount_value, min_order_amount,
		                     max_discount_amount, usage_limit, starts_at, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+couponCols,
		strings.ToUpper(strings.TrimSpace(c.Code)), c.DiscountType, c.DiscountValue,
		c.MinOrderAmount, c.MaxDiscountAmount, c.UsageLimit, c.StartsAt, c.ExpiresAt, c.IsActive,
	))
	if err != nil {
		return nil, fmt.Errorf("create coupon: %w", err)
	}
	return result, nil
}

// Update modifies an existing coupon.
func (s *CouponStore) Update(c *models.Coupon) error {
	_, err := s.db.Exec(`
		UPDATE coupons SET code = $1, discount_type = $2, discount_value = $3,
		                   min_order_amount = $4, max_discount_amount = $5,
		                   usage_limit = $6, starts_at = $7, expires_at = $8, is_active = $9
		WHERE id = $10
	`, strings.ToUpper(strings.TrimSpace(c.Code)), c.DiscountType, c.DiscountValue,
		c.MinOrderAmount, c.MaxDiscountAmount, c.UsageLimit, c.StartsAt, c.ExpiresAt,
		c.IsActive, c.ID)
	if err != nil {
		return fmt.Errorf("update coupon: %w", err)
	}
	return nil
}

// IncrementUsed bumps the redemption counter after a successful order.
func (s *CouponStore) IncrementUsed(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE coupons SET used_count = used_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment coupon usage: %w", err)
	}
	return nil
}

// Delete removes a coupon by ID.
func (s *CouponStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}
	return nil
}
