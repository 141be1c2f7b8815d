// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"bonik/internal/checkout"
	"bonik/internal/courier"
	"bonik/internal/events"
	"bonik/internal/invoice"
	"bonik/internal/models"
	"bonik/internal/sms"
	"bonik/internal/store"
)

// AdminOrders groups the back-office order handlers: listing, status
// management, courier booking, invoices, and manual order entry.
// Status changes fan out to the customer SMS and the Kafka order feed;
// both are best-effort and never fail the admin's request.
type AdminOrders struct {
	orders   *store.OrderStore
	couriers *courier.Registry
	notifier *sms.Notifier
	producer *events.Producer
	invoices *invoice.Generator
	pricing  checkout.Pricing
}

// NewAdminOrders creates a new AdminOrders handler group. notifier,
// producer, and invoices may be nil; the matching feature is then off.
func NewAdminOrders(orders *store.OrderStore, couriers *courier.Registry, notifier *sms.Notifier, producer *events.Producer, invoices *invoice.Generator, pricing checkout.Pricing) *AdminOrders {
	return &AdminOrders{
		orders:   orders,
		couriers: couriers,
		notifier: notifier,
		producer: producer,
		invoices: invoices,
		pricing:  pricing,
	}
}

// ListOrders returns orders newest first, filterable by status and a
// search term matching the order number, customer name, or phone.
func (h *AdminOrders) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if status := q.Get("status"); status != "" && !models.ValidOrderStatus(status) {
		respondError(w, http.StatusBadRequest, "Unknown order status")
		return
	}

	orders, err := h.orders.List(store.OrderFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
		Limit:  queryInt(q.Get("limit"), 50),
		Offset: queryInt(q.Get("offset"), 0),
	})
	if err != nil {
		slog.Error("list orders failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// GetOrder returns one order with its line items.
func (h *AdminOrders) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// UpdateStatus moves an order to a new status and fires the customer
// SMS and the status-change event.
func (h *AdminOrders) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "Unknown order status")
		return
	}
	status := models.OrderStatus(req.Status)

	if err := h.orders.UpdateStatus(order.ID, status); err != nil {
		slog.Error("update order status failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	order.Status = status

	h.afterStatusChange(order, status)

	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "status": status})
}

// afterStatusChange fires the SMS and event side effects of a status
// transition.
func (h *AdminOrders) afterStatusChange(order *models.Order, status models.OrderStatus) {
	if h.notifier != nil {
		o := *order
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := h.notifier.NotifyStatus(ctx, &o, status); err != nil {
				slog.Warn("status sms failed", "error", err, "order", o.OrderNumber)
			}
		}()
	}
	if h.producer != nil {
		if err := h.producer.PublishStatusChanged(order, status); err != nil {
			slog.Warn("publish status change failed", "error", err, "order", order.OrderNumber)
		}
	}
}

// UpdatePaymentStatus marks an order paid, pending, or failed.
func (h *AdminOrders) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	var req struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	ps := models.PaymentStatus(req.PaymentStatus)
	if ps != models.PaymentStatusPending && ps != models.PaymentStatusPaid && ps != models.PaymentStatusFailed {
		respondError(w, http.StatusBadRequest, "Unknown payment status")
		return
	}

	if err := h.orders.UpdatePaymentStatus(order.ID, ps); err != nil {
		slog.Error("update payment status failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update payment status")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "payment_status": ps})
}

// SetTracking records courier details typed in by hand, for parcels
// booked outside the integrated providers.
func (h *AdminOrders) SetTracking(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	var req struct {
		CourierName    string `json:"courier_name"`
		TrackingNumber string `json:"tracking_number"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CourierName == "" || req.TrackingNumber == "" {
		respondError(w, http.StatusBadRequest, "Courier name and tracking number are required")
		return
	}

	if err := h.orders.SetTracking(order.ID, req.CourierName, req.TrackingNumber); err != nil {
		slog.Error("set tracking failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to save tracking")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// BookCourier registers an order's parcel with the active courier
// provider, saves the returned tracking code, and moves the order to
// processing.
func (h *AdminOrders) BookCourier(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}

	consignment, err := h.couriers.Book(r.Context(), bookingFromOrder(order))
	if err != nil {
		slog.Error("courier booking failed", "error", err, "order", order.OrderNumber)
		respondError(w, http.StatusBadGateway, "Courier booking failed")
		return
	}

	provider := h.couriers.ActiveName()
	if err := h.orders.SetTracking(order.ID, provider, consignment.TrackingCode); err != nil {
		slog.Error("save tracking failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Booked, but failed to save tracking")
		return
	}
	if err := h.orders.UpdateStatus(order.ID, models.OrderStatusProcessing); err != nil {
		slog.Error("update status after booking failed", "error", err)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"courier":        provider,
		"consignmentId":  consignment.ConsignmentID,
		"trackingNumber": consignment.TrackingCode,
		"status":         consignment.Status,
	})
}

// BookCourierBulk registers many parcels at once and reports a result
// per order. Orders that fail stay untouched.
func (h *AdminOrders) BookCourierBulk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderIDs []uuid.UUID `json:"order_ids"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.OrderIDs) == 0 {
		respondError(w, http.StatusBadRequest, "No orders selected")
		return
	}

	byNumber := make(map[string]*models.Order, len(req.OrderIDs))
	bookings := make([]courier.Booking, 0, len(req.OrderIDs))
	for _, id := range req.OrderIDs {
		order, err := h.orders.FindByID(id)
		if err != nil {
			slog.Error("find order failed", "error", err, "id", id)
			respondError(w, http.StatusInternalServerError, "Failed to load orders")
			return
		}
		if order == nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Order %s not found", id))
			return
		}
		byNumber[order.OrderNumber] = order
		bookings = append(bookings, bookingFromOrder(order))
	}

	results, err := h.couriers.BookBulk(r.Context(), bookings)
	if err != nil {
		slog.Error("bulk courier booking failed", "error", err)
		respondError(w, http.StatusBadGateway, "Courier booking failed")
		return
	}

	provider := h.couriers.ActiveName()
	out := make([]map[string]any, 0, len(results))
	for _, res := range results {
		entry := map[string]any{"orderNumber": res.OrderNumber}
		if res.Err != nil {
			entry["error"] = res.Err.Error()
			out = append(out, entry)
			continue
		}

		order := byNumber[res.OrderNumber]
		if err := h.orders.SetTracking(order.ID, provider, res.Consignment.TrackingCode); err != nil {
			slog.Error("save tracking failed", "error", err, "order", res.OrderNumber)
			entry["error"] = "booked, but failed to save tracking"
			out = append(out, entry)
			continue
		}
		if err := h.orders.UpdateStatus(order.ID, models.OrderStatusProcessing); err != nil {
			slog.Error("update status after booking failed", "error", err, "order", res.OrderNumber)
		}
		entry["trackingNumber"] = res.Consignment.TrackingCode
		out = append(out, entry)
	}

	respondJSON(w, http.StatusOK, map[string]any{"courier": provider, "results": out})
}

// Invoice streams the order's invoice as a PDF.
func (h *AdminOrders) Invoice(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	if h.invoices == nil {
		respondError(w, http.StatusServiceUnavailable, "Invoice generation is not configured")
		return
	}

	pdf, err := h.invoices.GeneratePDF(r.Context(), order)
	if err != nil {
		slog.Error("invoice generation failed", "error", err, "order", order.OrderNumber)
		respondError(w, http.StatusInternalServerError, "Failed to generate invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "invoice-"+order.OrderNumber+".pdf"))
	w.Write(pdf)
}

// DeleteOrder removes an order and its items.
func (h *AdminOrders) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.loadOrder(w, r)
	if !ok {
		return
	}
	if err := h.orders.Delete(order.ID); err != nil {
		slog.Error("delete order failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// manualItem is one line of an admin-entered order. Either a catalog
// product reference or a free-form custom item — custom items exist
// only on manual orders, never on customer checkout.
type manualItem struct {
	ProductID    *uuid.UUID `json:"product_id,omitempty"`
	Name         string     `json:"name"`
	ProductImage *string    `json:"product_image,omitempty"`
	Price        int        `json:"price"`
	Quantity     int        `json:"quantity"`
}

// CreateManualOrder records an order taken over the phone or a
// messaging app. Prices are entered by the admin as-is, shipping is
// the flat zone fee, and the order is tagged with source "manual".
func (h *AdminOrders) CreateManualOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName    string       `json:"customer_name"`
		CustomerPhone   string       `json:"customer_phone"`
		ShippingAddress string       `json:"shipping_address"`
		City            string       `json:"city"`
		District        string       `json:"district"`
		Notes           string       `json:"notes"`
		Zone            string       `json:"zone"`
		Discount        int          `json:"discount"`
		Items           []manualItem `json:"items"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerPhone) == "" {
		respondError(w, http.StatusBadRequest, "Customer name and phone are required")
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "Order must have at least one item")
		return
	}
	if req.Discount < 0 {
		respondError(w, http.StatusBadRequest, "Discount cannot be negative")
		return
	}

	subtotal := 0
	items := make([]models.OrderItem, 0, len(req.Items))
	for i, in := range req.Items {
		if strings.TrimSpace(in.Name) == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Item %d has no name", i+1))
			return
		}
		if in.Price < 0 || in.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Item %d has an invalid price or quantity", i+1))
			return
		}
		subtotal += in.Price * in.Quantity
		items = append(items, models.OrderItem{
			ProductID:    in.ProductID,
			ProductName:  in.Name,
			ProductImage: in.ProductImage,
			Price:        in.Price,
			Quantity:     in.Quantity,
		})
	}

	shipping := h.pricing.ZoneShipping(models.ShippingZone(req.Zone))
	discount := req.Discount
	if discount > subtotal {
		discount = subtotal
	}

	order := &models.Order{
		Status:           models.OrderStatusPending,
		PaymentMethod:    "cod",
		PaymentStatus:    models.PaymentStatusPending,
		Subtotal:         subtotal,
		ShippingCost:     shipping,
		Discount:         discount,
		Total:            subtotal + shipping - discount,
		ShippingName:     strings.TrimSpace(req.CustomerName),
		ShippingPhone:    strings.TrimSpace(req.CustomerPhone),
		ShippingStreet:   strings.TrimSpace(req.ShippingAddress),
		ShippingCity:     req.City,
		ShippingDistrict: req.District,
		OrderSource:      "manual",
	}
	if req.Notes != "" {
		order.Notes = &req.Notes
	}

	created, err := h.orders.CreateWithItems(order, items)
	if err != nil {
		slog.Error("create manual order failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	if h.producer != nil {
		if err := h.producer.PublishOrderCreated(created); err != nil {
			slog.Warn("publish order created failed", "error", err, "order", created.OrderNumber)
		}
	}

	respondJSON(w, http.StatusCreated, created)
}

// loadOrder resolves the {id} route param to an order, writing the
// error response itself when it cannot.
func (h *AdminOrders) loadOrder(w http.ResponseWriter, r *http.Request) (*models.Order, bool) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order id")
		return nil, false
	}
	order, err := h.orders.FindByID(id)
	if err != nil {
		slog.Error("find order failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to load order")
		return nil, false
	}
	if order == nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return nil, false
	}
	return order, true
}

// bookingFromOrder maps an order to the courier booking payload.
func bookingFromOrder(o *models.Order) courier.Booking {
	address := o.ShippingStreet
	if o.ShippingCity != "" {
		address += ", " + o.ShippingCity
	}
	if o.ShippingDistrict != "" {
		address += ", " + o.ShippingDistrict
	}
	notes := ""
	if o.Notes != nil {
		notes = *o.Notes
	}
	return courier.Booking{
		OrderNumber: o.OrderNumber,
		Name:        o.ShippingName,
		Phone:       o.ShippingPhone,
		Address:     address,
		CODAmount:   o.CODAmount(),
		Notes:       notes,
	}
}
