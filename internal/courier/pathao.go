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
	"sync"
	"time"
)

// pathaoProvider implements the Provider interface using the Pathao
// Merchant API. Pathao uses OAuth password-grant tokens, cached until
// shortly before expiry.
type pathaoProvider struct {
	config ProviderConfig
	client *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// newPathao creates a new Pathao provider.
func newPathao(cfg ProviderConfig) *pathaoProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-hermes.pathao.com"
	}
	return &pathaoProvider{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *pathaoProvider) Name() string { return "pathao" }

// token returns a valid access token, issuing a new one when the cached
// token is missing or about to expire.
func (p *pathaoProvider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	body, err := json.Marshal(map[string]string{
		"client_id":     p.config.ClientID,
		"client_secret": p.config.APISecret,
		"grant_type":    "password",
		"username":      p.config.Username,
		"password":      p.config.Password,
	})
	if err != nil {
		return "", fmt.Errorf("pathao marshal token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.BaseURL+"/aladdin/api/v1/issue-token", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("pathao token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pathao token http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("pathao token read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pathao token error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("pathao token unmarshal: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("pathao: empty access token")
	}

	p.accessToken = result.AccessToken
	// Renew a minute early to avoid using a token at the expiry edge.
	p.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn)*time.Second - time.Minute)
	return p.accessToken, nil
}

// Book creates a Pathao delivery order.
func (p *pathaoProvider) Book(ctx context.Context, b Booking) (*Consignment, error) {
	token, err := p.token(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"merchant_order_id":  b.OrderNumber,
		"recipient_name":     b.Name,
		"recipient_phone":    b.Phone,
		"recipient_address":  b.Address,
		"amount_to_collect":  b.CODAmount,
		"special_instruction": b.Notes,
		"delivery_type":      48, // normal delivery
		"item_type":          2,  // parcel
		"item_quantity":      1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("pathao marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.BaseURL+"/aladdin/api/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("pathao request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pathao http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("pathao read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("pathao API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Data struct {
			ConsignmentID string `json:"consignment_id"`
			OrderStatus   string `json:"order_status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("pathao unmarshal: %w", err)
	}
	if result.Data.ConsignmentID == "" {
		return nil, fmt.Errorf("pathao: no consignment in response")
	}

	return &Consignment{
		ConsignmentID: result.Data.ConsignmentID,
		TrackingCode:  result.Data.ConsignmentID,
		Status:        result.Data.OrderStatus,
	}, nil
}
