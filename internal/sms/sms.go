// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sms sends order notifications to customers through a
// BulkSMSBD-compatible HTTP gateway and renders the per-status message
// templates managed in the back office.
package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bonik/internal/models"
)

// Gateway is a minimal client for BulkSMSBD-style SMS APIs.
type Gateway struct {
	apiKey   string
	senderID string
	baseURL  string
	client   *http.Client
}

// NewGateway creates a Gateway. An empty apiKey disables sending;
// Send then becomes a no-op so order flows never fail on SMS.
func NewGateway(apiKey, senderID, baseURL string) *Gateway {
	if baseURL == "" {
		baseURL = "http://bulksmsbd.net/api/smsapi"
	}
	return &Gateway{
		apiKey:   apiKey,
		senderID: senderID,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether the gateway has credentials.
func (g *Gateway) Enabled() bool {
	return g.apiKey != ""
}

// Send delivers one message to a BD mobile number. Disabled gateways
// return nil without any network call.
func (g *Gateway) Send(ctx context.Context, phone, message string) error {
	if !g.Enabled() {
		return nil
	}

	params := url.Values{}
	params.Set("api_key", g.apiKey)
	params.Set("senderid", g.senderID)
	params.Set("number", phone)
	params.Set("message", message)
	params.Set("type", "text")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("sms request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("sms read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// Render substitutes the template placeholders with order values.
// Supported: {{name}}, {{order_number}}, {{total}}, {{tracking_number}}.
func Render(body string, o *models.Order) string {
	tracking := ""
	if o.TrackingNumber != nil {
		tracking = *o.TrackingNumber
	}
	r := strings.NewReplacer(
		"{{name}}", o.ShippingName,
		"{{order_number}}", o.OrderNumber,
		"{{total}}", strconv.Itoa(o.Total),
		"{{tracking_number}}", tracking,
	)
	return r.Replace(body)
}
