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

// steadfastProvider implements the Provider interface using the
// Steadfast Courier merchant API (POST /api/v1/create_order).
type steadfastProvider struct {
	config ProviderConfig
	client *http.Client
}

// newSteadfast creates a new Steadfast provider.
func newSteadfast(cfg ProviderConfig) *steadfastProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://portal.steadfast.com.bd"
	}
	return &steadfastProvider{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *steadfastProvider) Name() string { return "steadfast" }

func (p *steadfastProvider) do(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("steadfast marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("steadfast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", p.config.APIKey)
	req.Header.Set("Secret-Key", p.config.APISecret)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("steadfast http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("steadfast read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("steadfast API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("steadfast unmarshal: %w", err)
	}
	return nil
}

// Book creates a single consignment. The order number doubles as the
// merchant invoice so parcels are traceable back to orders.
func (p *steadfastProvider) Book(ctx context.Context, b Booking) (*Consignment, error) {
	payload := steadfastOrder{
		Invoice:          b.OrderNumber,
		RecipientName:    b.Name,
		RecipientPhone:   b.Phone,
		RecipientAddress: b.Address,
		CODAmount:        b.CODAmount,
		Note:             b.Notes,
	}

	var result steadfastResponse
	if err := p.do(ctx, "/api/v1/create_order", payload, &result); err != nil {
		return nil, err
	}
	if result.Consignment == nil {
		return nil, fmt.Errorf("steadfast: no consignment in response (status %d)", result.Status)
	}

	return &Consignment{
		ConsignmentID: result.Consignment.ConsignmentID.String(),
		TrackingCode:  result.Consignment.TrackingCode,
		Status:        result.Consignment.Status,
	}, nil
}

// BookBulk creates up to 500 consignments in a single API call.
func (p *steadfastProvider) BookBulk(ctx context.Context, bookings []Booking) ([]BulkResult, error) {
	data := make([]steadfastOrder, 0, len(bookings))
	for _, b := range bookings {
		data = append(data, steadfastOrder{
			Invoice:          b.OrderNumber,
			RecipientName:    b.Name,
			RecipientPhone:   b.Phone,
			RecipientAddress: b.Address,
			CODAmount:        b.CODAmount,
			Note:             b.Notes,
		})
	}

	var result steadfastBulkResponse
	if err := p.do(ctx, "/api/v1/create_order/bulk-order", map[string]any{"data": data}, &result); err != nil {
		return nil, err
	}

	// The bulk endpoint returns entries in request order.
	byInvoice := make(map[string]steadfastConsignment, len(result.Data))
	for _, c := range result.Data {
		byInvoice[c.Invoice] = c
	}

	results := make([]BulkResult, 0, len(bookings))
	for _, b := range bookings {
		c, ok := byInvoice[b.OrderNumber]
		if !ok || c.Status == "error" {
			results = append(results, BulkResult{
				OrderNumber: b.OrderNumber,
				Err:         fmt.Errorf("steadfast: bulk booking failed for %s", b.OrderNumber),
			})
			continue
		}
		results = append(results, BulkResult{
			OrderNumber: b.OrderNumber,
			Consignment: &Consignment{
				ConsignmentID: c.ConsignmentID.String(),
				TrackingCode:  c.TrackingCode,
				Status:        c.Status,
			},
		})
	}
	return results, nil
}

// --- Steadfast API types ---

type steadfastOrder struct {
	Invoice          string `json:"invoice"`
	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone"`
	RecipientAddress string `json:"recipient_address"`
	CODAmount        int    `json:"cod_amount"`
	Note             string `json:"note,omitempty"`
}

// steadfastID tolerates the API returning consignment IDs as either a
// JSON number or a string.
type steadfastID string

func (s *steadfastID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*s = steadfastID(n.String())
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = steadfastID(str)
	return nil
}

func (s steadfastID) String() string { return string(s) }

type steadfastConsignment struct {
	ConsignmentID steadfastID `json:"consignment_id"`
	Invoice       string      `json:"invoice"`
	TrackingCode  string      `json:"tracking_code"`
	Status        string      `json:"status"`
}

type steadfastResponse struct {
	Status      int                   `json:"status"`
	Consignment *steadfastConsignment `json:"consignment"`
}

type steadfastBulkResponse struct {
	Status int                    `json:"status"`
	Data   []steadfastConsignment `json:"data"`
}
