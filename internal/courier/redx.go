// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// redxProvider implements the Provider interface using the RedX
// merchant API, which authenticates with a static bearer token.
type redxProvider struct {
	config ProviderConfig
	client *http.Client
}

// newRedX creates a new RedX provider.
func newRedX(cfg ProviderConfig) *redxProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openapi.redx.com.bd"
	}
	return &redxProvider{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *redxProvider) Name() string { return "redx" }

// Book creates a RedX parcel.
func (p *redxProvider) Book(ctx context.Context, b Booking) (*Consignment, error) {
	payload := map[string]any{
		"customer_name":    b.Name,
		"customer_phone":   b.Phone,
		"customer_address": b.Address,
		"merchant_invoice_id": b.OrderNumber,
		"cash_collection_amount": b.CODAmount,
		"instruction":      b.Notes,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("redx marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.BaseURL+"/v1.0.0-beta/parcel", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("redx request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("API-ACCESS-TOKEN", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("redx http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("redx read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("redx API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		TrackingID string `json:"tracking_id"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("redx unmarshal: %w", err)
	}
	if result.TrackingID == "" {
		return nil, fmt.Errorf("redx: no tracking id in response")
	}

	return &Consignment{
		ConsignmentID: result.TrackingID,
		TrackingCode:  result.TrackingID,
		Status:        "pending",
	}, nil
}
