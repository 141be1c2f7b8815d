// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DiscountType selects how a coupon's value is applied.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is a marketing discount code. Amounts are whole taka;
// percentage values are 0–100.
type Coupon struct {
	ID                uuid.UUID    `json:"id"`
	Code              string       `json:"code"`
	DiscountType      DiscountType `json:"discount_type"`
	DiscountValue     int          `json:"discount_value"`
	MinOrderAmount    *int         `json:"min_order_amount,omitempty"`
	MaxDiscountAmount *int         `json:"max_discount_amount,omitempty"`
	UsageLimit        *int         `json:"usage_limit,omitempty"`
	UsedCount         int          `json:"used_count"`
	StartsAt          *time.Time   `json:"starts_at,omitempty"`
	ExpiresAt         *time.Time   `json:"expires_at,omitempty"`
	IsActive          bool         `json:"is_active"`
	CreatedAt         time.Time    `json:"created_at"`
}

// Usable reports whether the coupon can be applied at the given time to an
// order of the given subtotal. It checks the active flag, validity window,
// usage limit, and minimum order amount.
func (c *Coupon) Usable(now time.Time, subtotal int) bool {
	if !c.IsActive {
		return false
	}
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false
	}
	if c.MinOrderAmount != nil && subtotal < *c.MinOrderAmount {
		return false
	}
	return true
}

// DiscountFor computes the taka discount for a subtotal. Percentage
// discounts are capped by MaxDiscountAmount when set; the result never
// exceeds the subtotal.
func (c *Coupon) DiscountFor(subtotal int) int {
	var d int
	switch c.DiscountType {
	case DiscountPercentage:
		d = subtotal * c.DiscountValue / 100
		if c.MaxDiscountAmount != nil && d > *c.MaxDiscountAmount {
			d = *c.MaxDiscountAmount
		}
	case DiscountFixed:
		d = c.DiscountValue
	}
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return d
}
