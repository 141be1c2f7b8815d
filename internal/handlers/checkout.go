// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bonik/internal/checkout"
	"bonik/internal/events"
	"bonik/internal/models"
	"bonik/internal/tracking"
)

// orderRequest is the wire format of POST /api/orders, shared by the
// cart checkout and the landing-page embedded forms.
type orderRequest struct {
	CustomerName    string               `json:"customer_name"`
	CustomerPhone   string               `json:"customer_phone"`
	ShippingAddress string               `json:"shipping_address"`
	City            string               `json:"city"`
	District        string               `json:"district"`
	PostalCode      string               `json:"postal_code"`
	Notes           string               `json:"notes"`
	CouponCode      string               `json:"coupon_code"`
	Zone            string               `json:"zone"`
	OrderSource     string               `json:"order_source"`
	Items           []checkout.ItemInput `json:"items"`
}

// Checkout handles public order placement. Facebook purchase events and
// the Kafka order feed are fired after the order commits; neither may
// fail the customer's request.
type Checkout struct {
	service  *checkout.Service
	tracker  *tracking.Client
	producer *events.Producer
}

// NewCheckout creates the checkout handler. tracker and producer may be
// nil; the matching side effects are then skipped.
func NewCheckout(service *checkout.Service, tracker *tracking.Client, producer *events.Producer) *Checkout {
	return &Checkout{service: service, tracker: tracker, producer: producer}
}

// PlaceOrder validates and prices the submitted cart server-side and
// creates the order.
func (h *Checkout) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.service.PlaceOrder(checkout.PlaceOrderInput{
		Name:       req.CustomerName,
		Phone:      req.CustomerPhone,
		Address:    req.ShippingAddress,
		City:       req.City,
		District:   req.District,
		PostalCode: req.PostalCode,
		Notes:      req.Notes,
		Items:      req.Items,
		CouponCode: req.CouponCode,
		Zone:       models.ShippingZone(req.Zone),
		Source:     req.OrderSource,
	})
	if err != nil {
		respondPlaceOrderError(w, err)
		return
	}

	h.afterPlace(order, r)

	respondJSON(w, http.StatusCreated, map[string]any{
		"orderId":      order.ID,
		"orderNumber":  order.OrderNumber,
		"subtotal":     order.Subtotal,
		"shippingCost": order.ShippingCost,
		"discount":     order.Discount,
		"total":        order.Total,
		"items":        order.Items,
	})
}

// trackRequest is the wire format of POST /api/track. The storefront
// mirrors its pixel events here so they reach the Conversions API with
// a shared event_id for deduplication.
type trackRequest struct {
	EventName string `json:"event_name"`
	EventID   string `json:"event_id"`
	SourceURL string `json:"source_url"`
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Value     int    `json:"value"`
}

// allowedTrackEvents is the set of browser events the track endpoint
// will forward. Purchase stays server-side only.
var allowedTrackEvents = map[string]bool{
	"PageView":         true,
	"ViewContent":      true,
	"AddToCart":        true,
	"InitiateCheckout": true,
	"Lead":             true,
}

// TrackEvent forwards a browser pixel event to the Conversions API.
// Always answers 202; delivery is best effort.
func (h *Checkout) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !allowedTrackEvents[req.EventName] {
		respondError(w, http.StatusBadRequest, "Unknown event name")
		return
	}

	if h.tracker != nil {
		ev := tracking.BrowserEvent(req.EventName, req.EventID, req.SourceURL, req.Phone, req.Name, req.City, req.Value)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.tracker.Send(ctx, ev); err != nil {
				slog.Warn("facebook event failed", "error", err, "event", ev.EventName)
			}
		}()
	}

	respondJSON(w, http.StatusAccepted, map[string]any{"ok": true})
}

// afterPlace fires post-commit side effects in the background.
func (h *Checkout) afterPlace(order *models.Order, r *http.Request) {
	sourceURL := "https://" + r.Host + r.URL.Path
	if r.TLS == nil {
		sourceURL = "http://" + r.Host + r.URL.Path
	}

	if h.tracker != nil {
		ev := tracking.PurchaseFromOrder(order, sourceURL)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.tracker.SendPurchase(ctx, ev); err != nil {
				slog.Warn("facebook purchase event failed", "error", err, "order", order.OrderNumber)
			}
		}()
	}

	if h.producer != nil {
		if err := h.producer.PublishOrderCreated(order); err != nil {
			slog.Warn("publish order created failed", "error", err, "order", order.OrderNumber)
		}
	}
}
