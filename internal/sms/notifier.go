// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sms

import (
	"context"
	"fmt"
	"log/slog"

	"bonik/internal/models"
)

// Templates resolves the message template for an order status.
// Implemented by the SMS template store.
type Templates interface {
	FindByStatus(status models.OrderStatus) (*models.SMSTemplate, error)
}

// Notifier sends the configured status-change SMS for an order.
type Notifier struct {
	gateway   *Gateway
	templates Templates
}

// NewNotifier creates a Notifier.
func NewNotifier(gateway *Gateway, templates Templates) *Notifier {
	return &Notifier{gateway: gateway, templates: templates}
}

// NotifyStatus sends the template configured for the order's new
// status. Missing or disabled templates are skipped without error;
// the customer just gets no message for that transition.
func (n *Notifier) NotifyStatus(ctx context.Context, o *models.Order, status models.OrderStatus) error {
	if !n.gateway.Enabled() {
		return nil
	}

	tpl, err := n.templates.FindByStatus(status)
	if err != nil {
		return fmt.Errorf("load sms template: %w", err)
	}
	if tpl == nil || !tpl.IsEnabled {
		return nil
	}

	message := Render(tpl.Body, o)
	if err := n.gateway.Send(ctx, o.ShippingPhone, message); err != nil {
		return fmt.Errorf("send status sms: %w", err)
	}

	slog.Info("order status sms sent",
		"order", o.OrderNumber, "status", status, "phone", o.ShippingPhone)
	return nil
}
