// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package courier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
)

// HistoryClient looks up a customer's delivery history across couriers
// by phone number, via the BD Courier aggregation API. Admins use it to
// gauge fraud risk before confirming a cash-on-delivery order.
type HistoryClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewHistoryClient creates a HistoryClient. An empty apiKey disables
// lookups; Check then returns an error.
func NewHistoryClient(apiKey, baseURL string) *HistoryClient {
	if baseURL == "" {
		baseURL = "https://bdcourier.live"
	}
	return &HistoryClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// History is the normalized lookup result. Blocked is set when the
// upstream WAF rejected the request or the upstream timed out, so
// callers can distinguish "no data" from "try again later".
type History struct {
	Success bool                      `json:"success"`
	Blocked bool                      `json:"blocked,omitempty"`
	Message string                    `json:"message,omitempty"`
	Phone   string                    `json:"phone,omitempty"`
	Courier map[string]CourierSummary `json:"courierData,omitempty"`
}

// CourierSummary is one courier's parcel statistics for a phone number.
type CourierSummary struct {
	TotalParcel     int     `json:"total_parcel"`
	SuccessParcel   int     `json:"success_parcel"`
	CancelledParcel int     `json:"cancelled_parcel"`
	SuccessRatio    float64 `json:"success_ratio"`
}

// NormalizePhone reduces a phone number to the local form BD Courier
// indexes by: digits only, country code 88 stripped, leading 0
// restored. "+880 1712-345678" and "01712345678" query the same
// history.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	clean := digits.String()
	if strings.HasPrefix(clean, "88") {
		clean = clean[2:]
	}
	if !strings.HasPrefix(clean, "0") && len(clean) == 10 {
		clean = "0" + clean
	}
	return clean
}

// Check queries delivery history for a phone number. A 403 from the
// upstream's WAF and an upstream timeout are both normalized into
// {success:false, blocked:true} rather than treated as errors, since
// they clear on retry.
func (c *HistoryClient) Check(ctx context.Context, phone string) (*History, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("courier history: no API key configured")
	}

	phone = NormalizePhone(phone)

	u := c.baseURL + "/api/courier-check?phone=" + url.QueryEscape(phone)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("courier history request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return &History{
				Success: false,
				Blocked: true,
				Message: "Courier history service timed out. Please try again later or check manually at bdcourier.com",
			}, nil
		}
		return nil, fmt.Errorf("courier history http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("courier history read: %w", err)
	}

	if resp.StatusCode == http.StatusForbidden {
		return blockedHistory(), nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("courier history error (status %d): %s", resp.StatusCode, string(body))
	}

	// The WAF sometimes serves an HTML challenge with a 200.
	if strings.HasPrefix(strings.TrimSpace(string(body)), "<") {
		return blockedHistory(), nil
	}

	var result History
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("courier history unmarshal: %w", err)
	}
	result.Success = true
	result.Phone = phone
	return &result, nil
}

func blockedHistory() *History {
	return &History{
		Success: false,
		Blocked: true,
		Message: "The courier history service is temporarily blocked. Please try again later or check manually at bdcourier.com",
	}
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
