// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks an order through its fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// ValidOrderStatus reports whether s is a known order status value.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
		OrderStatusReturned:
		return true
	}
	return false
}

// PaymentStatus tracks whether an order has been paid.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// ShippingZone selects the fixed courier fee for manual and landing-page
// orders. The cart checkout path uses the free-shipping threshold instead.
type ShippingZone string

const (
	ZoneInsideDhaka  ShippingZone = "inside_dhaka"
	ZoneOutsideDhaka ShippingZone = "outside_dhaka"
)

// Order is a customer purchase. All money fields are whole taka and are
// computed server-side from catalog prices — never trusted from a client.
type Order struct {
	ID             uuid.UUID     `json:"id"`
	OrderNumber    string        `json:"order_number"`
	UserID         *uuid.UUID    `json:"user_id,omitempty"`
	Status         OrderStatus   `json:"status"`
	PaymentMethod  string        `json:"payment_method"` // "cod" is the only live method
	PaymentStatus  PaymentStatus `json:"payment_status"`
	Subtotal       int           `json:"subtotal"`
	ShippingCost   int           `json:"shipping_cost"`
	Discount       int           `json:"discount"`
	Total          int           `json:"total"`
	CouponCode     *string       `json:"coupon_code,omitempty"`
	ShippingName   string        `json:"shipping_name"`
	ShippingPhone  string        `json:"shipping_phone"`
	ShippingStreet string        `json:"shipping_street"`
	ShippingCity   string        `json:"shipping_city"`
	ShippingDistrict string      `json:"shipping_district"`
	ShippingPostal *string       `json:"shipping_postal_code,omitempty"`
	Notes          *string       `json:"notes,omitempty"`
	TrackingNumber *string       `json:"tracking_number,omitempty"`
	CourierName    *string       `json:"courier_name,omitempty"`
	OrderSource    string        `json:"order_source"` // "web", "manual", "landing-page:<slug>"
	Items          []OrderItem   `json:"items,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// OrderItem is a denormalized line-item snapshot. ProductID is nil for
// custom items that never existed in the catalog (manual orders).
type OrderItem struct {
	ID           uuid.UUID  `json:"id"`
	OrderID      uuid.UUID  `json:"order_id"`
	ProductID    *uuid.UUID `json:"product_id,omitempty"`
	ProductName  string     `json:"product_name"`
	ProductImage *string    `json:"product_image,omitempty"`
	Price        int        `json:"price"`
	Quantity     int        `json:"quantity"`
}

// LineTotal returns price × quantity for this item.
func (i *OrderItem) LineTotal() int {
	return i.Price * i.Quantity
}

// CODAmount returns the cash-on-delivery amount a courier should collect:
// the full total for unpaid COD orders, zero otherwise.
func (o *Order) CODAmount() int {
	if o.PaymentMethod == "cod" && o.PaymentStatus != PaymentStatusPaid {
		return o.Total
	}
	return 0
}
