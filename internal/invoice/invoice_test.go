package invoice

import (
	"strings"
	"testing"
	"time"

	"bonik/internal/models"
)

func TestRenderHTML(t *testing.T) {
	coupon := "EID10"
	order := &models.Order{
		OrderNumber:      "BNK-1001",
		Status:           models.OrderStatusPending,
		PaymentMethod:    "cod",
		PaymentStatus:    models.PaymentStatusPending,
		Subtotal:         1800,
		ShippingCost:     100,
		Discount:         180,
		Total:            1720,
		CouponCode:       &coupon,
		ShippingName:     "Rahim Uddin",
		ShippingPhone:    "01712345678",
		ShippingStreet:   "House 1, Dhanmondi",
		ShippingCity:     "Dhaka",
		ShippingDistrict: "Dhaka",
		CreatedAt:        time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{ProductName: "Premium Panjabi", Price: 900, Quantity: 2},
		},
	}

	g := NewGenerator("Bonik", "")
	html, err := g.RenderHTML(order)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}

	for _, want := range []string{
		"BNK-1001",
		"Rahim Uddin",
		"01712345678",
		"Premium Panjabi",
		"Tk 1800",        // line total and subtotal
		"Tk 1720",        // grand total
		"EID10",          // coupon shown with discount
		"Cash on delivery: Tk 1720",
		"25 Feb 2026",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("invoice missing %q", want)
		}
	}
}

func TestRenderHTML_PaidOrderHasNoCOD(t *testing.T) {
	order := &models.Order{
		OrderNumber:   "BNK-1002",
		PaymentMethod: "cod",
		PaymentStatus: models.PaymentStatusPaid,
		Total:         500,
		CreatedAt:     time.Now(),
	}

	g := NewGenerator("Bonik", "")
	html, err := g.RenderHTML(order)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if strings.Contains(html, "Cash on delivery") {
		t.Error("paid order must not show a COD amount")
	}
}
