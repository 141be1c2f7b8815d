// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package checkout

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"bonik/internal/models"
)

// Limits on a single order, enforced before any database work.
const (
	MaxNameLen    = 100
	MaxAddressLen = 300
	MaxItems      = 50
	MaxQuantity   = 99
)

// ValidationError reports a rejected order field. Handlers surface it
// as a 400 with the field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Catalog looks up active products for re-pricing cart lines and
// records stock movement after a sale.
type Catalog interface {
	FindActiveByIDs(ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
	DecrementStock(id uuid.UUID, qty int) error
}

// Coupons resolves and redeems discount codes.
type Coupons interface {
	FindByCode(code string) (*models.Coupon, error)
	IncrementUsed(id uuid.UUID) error
}

// Orders persists a priced order with its items.
type Orders interface {
	CreateWithItems(o *models.Order, items []models.OrderItem) (*models.Order, error)
}

// Service owns the order placement flow: validate, re-price from the
// catalog, apply shipping and coupon rules, persist.
type Service struct {
	catalog Catalog
	coupons Coupons
	orders  Orders
	pricing Pricing
}

// NewService creates a checkout Service.
func NewService(catalog Catalog, coupons Coupons, orders Orders, pricing Pricing) *Service {
	return &Service{catalog: catalog, coupons: coupons, orders: orders, pricing: pricing}
}

// ItemInput is one requested cart line. Price comes from the catalog.
type ItemInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// PlaceOrderInput carries everything a customer submits at checkout.
type PlaceOrderInput struct {
	Name       string      `json:"name"`
	Phone      string      `json:"phone"`
	Address    string      `json:"address"`
	City       string      `json:"city"`
	District   string      `json:"district"`
	PostalCode string      `json:"postal_code"`
	Notes      string      `json:"notes"`
	Items      []ItemInput `json:"items"`
	CouponCode string      `json:"coupon_code"`
	// Zone, when set, switches shipping from the cart threshold rule to
	// the flat zone fee (landing pages and manual orders).
	Zone   models.ShippingZone `json:"zone"`
	Source string              `json:"source"`
}

func (s *Service) validate(in *PlaceOrderInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = NormalizePhone(in.Phone)

	if in.Name == "" || len(in.Name) > MaxNameLen {
		return invalid("name", fmt.Sprintf("must be 1-%d characters", MaxNameLen))
	}
	if !ValidPhone(in.Phone) {
		return invalid("phone", "must be a valid Bangladeshi mobile number")
	}
	if in.Address == "" || len(in.Address) > MaxAddressLen {
		return invalid("address", fmt.Sprintf("must be 1-%d characters", MaxAddressLen))
	}
	if len(in.Items) == 0 || len(in.Items) > MaxItems {
		return invalid("items", fmt.Sprintf("must contain 1-%d items", MaxItems))
	}
	for _, item := range in.Items {
		if item.Quantity < 1 || item.Quantity > MaxQuantity {
			return invalid("items", fmt.Sprintf("quantity must be 1-%d", MaxQuantity))
		}
	}
	return nil
}

// PlaceOrder validates and prices the input, then persists the order
// with snapshot line items. It returns a *ValidationError for client
// mistakes and a plain error for infrastructure failures.
func (s *Service) PlaceOrder(in PlaceOrderInput) (*models.Order, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.catalog.FindActiveByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	// Every line must point at a live product; prices are taken from
	// the catalog, never from the request.
	var (
		subtotal int
		items    []models.OrderItem
	)
	for _, item := range in.Items {
		p, ok := products[item.ProductID]
		if !ok {
			return nil, invalid("items", "product unavailable: "+item.ProductID.String())
		}
		pid := p.ID
		var image *string
		if img := p.FirstImage(); img != "" {
			image = &img
		}
		items = append(items, models.OrderItem{
			ProductID:    &pid,
			ProductName:  p.Name,
			ProductImage: image,
			Price:        p.Price,
			Quantity:     item.Quantity,
		})
		subtotal += p.Price * item.Quantity
	}

	var shipping int
	if in.Zone != "" {
		shipping = s.pricing.ZoneShipping(in.Zone)
	} else {
		shipping = s.pricing.CartShipping(subtotal)
	}

	var (
		discount   int
		coupon     *models.Coupon
		couponCode *string
	)
	if in.CouponCode != "" {
		coupon, err = s.coupons.FindByCode(in.CouponCode)
		if err != nil {
			return nil, fmt.Errorf("load coupon: %w", err)
		}
		if coupon == nil || !coupon.Usable(time.Now(), subtotal) {
			return nil, invalid("coupon_code", "coupon is not valid for this order")
		}
		discount = coupon.DiscountFor(subtotal)
		couponCode = &coupon.Code
	}

	source := in.Source
	if source == "" {
		source = "web"
	}

	order := &models.Order{
		Status:           models.OrderStatusPending,
		PaymentMethod:    "cod",
		PaymentStatus:    models.PaymentStatusPending,
		Subtotal:         subtotal,
		ShippingCost:     shipping,
		Discount:         discount,
		Total:            subtotal - discount + shipping,
		CouponCode:       couponCode,
		ShippingName:     in.Name,
		ShippingPhone:    in.Phone,
		ShippingStreet:   in.Address,
		ShippingCity:     orDefault(in.City, "N/A"),
		ShippingDistrict: orDefault(in.District, "N/A"),
		OrderSource:      source,
	}
	if in.PostalCode != "" {
		order.ShippingPostal = &in.PostalCode
	}
	if in.Notes != "" {
		order.Notes = &in.Notes
	}

	created, err := s.orders.CreateWithItems(order, items)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if coupon != nil {
		// Usage tracking is best effort; the order already committed.
		if err := s.coupons.IncrementUsed(coupon.ID); err != nil {
			slog.Error("failed to increment coupon usage",
				"coupon", coupon.Code, "order", created.OrderNumber, "error", err)
		}
	}

	// Stock movement is best effort too; a miss here leaves the count
	// high, never blocks the sale.
	for _, item := range in.Items {
		if err := s.catalog.DecrementStock(item.ProductID, item.Quantity); err != nil {
			slog.Error("failed to decrement stock",
				"product", item.ProductID, "order", created.OrderNumber, "error", err)
		}
	}

	return created, nil
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
