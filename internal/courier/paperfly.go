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

// paperflyProvider implements the Provider interface using the Paperfly
// merchant API, which uses HTTP basic auth.
type paperflyProvider struct {
	config ProviderConfig
	client *http.Client
}

// newPaperfly creates a new Paperfly provider.
func newPaperfly(cfg ProviderConfig) *paperflyProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.paperfly.com.bd"
	}
	return &paperflyProvider{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *paperflyProvider) Name() string { return "paperfly" }

// Book creates a Paperfly delivery order.
func (p *paperflyProvider) Book(ctx context.Context, b Booking) (*Consignment, error) {
	payload := map[string]any{
		"merOrderRef":    b.OrderNumber,
		"custname":       b.Name,
		"custPhone":      b.Phone,
		"custAddress":    b.Address,
		"max_weight":     "1",
		"productSizeWeight": "standard",
		"collectionAmount":  fmt.Sprintf("%d", b.CODAmount),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("paperfly marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.BaseURL+"/merchant/api/react/smart-check/order_place.php", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("paperfly request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.config.Username, p.config.Password)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paperfly http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("paperfly read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paperfly API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Success struct {
			TrackingNumber string `json:"tracking_number"`
		} `json:"success"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("paperfly unmarshal: %w", err)
	}
	if result.Success.TrackingNumber == "" {
		return nil, fmt.Errorf("paperfly: no tracking number in response")
	}

	return &Consignment{
		ConsignmentID: result.Success.TrackingNumber,
		TrackingCode:  result.Success.TrackingNumber,
		Status:        "pending",
	}, nil
}
