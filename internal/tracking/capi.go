// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tracking sends server-side purchase events to the Facebook
// Conversions API. Customer PII is SHA-256 hashed before leaving the
// process, per Meta's matching spec.
package tracking

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"bonik/internal/models"
)

// Settings keys read from the admin settings table.
const (
	SettingPixelID       = "fb_pixel_id"
	SettingCAPIToken     = "fb_capi_token"
	SettingCAPIEnabled   = "fb_capi_enabled"
	SettingTestEventCode = "fb_test_event_code"
)

// SettingsSource provides the current marketing settings. Implemented
// by the admin settings store.
type SettingsSource interface {
	All() (models.AdminSettings, error)
}

// Client posts events to graph.facebook.com. Credentials are read from
// the settings source per call, so admins can rotate tokens without a
// restart.
type Client struct {
	settings SettingsSource
	baseURL  string
	client   *http.Client
}

// NewClient creates a CAPI client.
func NewClient(settings SettingsSource) *Client {
	return &Client{
		settings: settings,
		baseURL:  "https://graph.facebook.com/v18.0",
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// HashPII normalizes (lowercase, trim) and SHA-256 hashes a PII value
// for CAPI user matching.
func HashPII(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// HashPhone reduces a phone number to digits only before hashing, so
// "+880 1712-345678" and "8801712345678" match the same user.
func HashPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	return HashPII(digits.String())
}

// PurchaseFromOrder builds the CAPI purchase payload for an order.
func PurchaseFromOrder(o *models.Order, sourceURL string) Event {
	contents := make([]content, 0, len(o.Items))
	for _, item := range o.Items {
		var id string
		if item.ProductID != nil {
			id = item.ProductID.String()
		}
		contents = append(contents, content{
			ID:        id,
			Quantity:  item.Quantity,
			ItemPrice: item.Price,
		})
	}

	return Event{
		EventName:      "Purchase",
		EventTime:      o.CreatedAt.Unix(),
		EventID:        o.OrderNumber,
		ActionSource:   "website",
		EventSourceURL: sourceURL,
		UserData: userData{
			Phones: []string{HashPhone(o.ShippingPhone)},
			Names:  []string{HashPII(o.ShippingName)},
			Cities: []string{HashPII(o.ShippingCity)},
		},
		CustomData: customData{
			Currency: "BDT",
			Value:    o.Total,
			Contents: contents,
		},
	}
}

// BrowserEvent builds an event from fields the storefront reports to
// the public track endpoint. PII is hashed here, so raw values never
// travel past the request handler.
func BrowserEvent(name, eventID, sourceURL, phone, customerName, city string, value int) Event {
	ev := Event{
		EventName:      name,
		EventTime:      time.Now().Unix(),
		EventID:        eventID,
		ActionSource:   "website",
		EventSourceURL: sourceURL,
	}
	if phone != "" {
		ev.UserData.Phones = []string{HashPhone(phone)}
	}
	if customerName != "" {
		ev.UserData.Names = []string{HashPII(customerName)}
	}
	if city != "" {
		ev.UserData.Cities = []string{HashPII(city)}
	}
	if value > 0 {
		ev.CustomData = customData{Currency: "BDT", Value: value}
	}
	return ev
}

// SendPurchase posts a purchase event. It silently does nothing when
// CAPI is disabled or unconfigured, so callers can fire-and-forget.
func (c *Client) SendPurchase(ctx context.Context, ev Event) error {
	return c.Send(ctx, ev)
}

// Send posts any event. Browser-originated events (PageView,
// ViewContent, ...) arrive through the public track endpoint and share
// this path with server-side purchases.
func (c *Client) Send(ctx context.Context, ev Event) error {
	settings, err := c.settings.All()
	if err != nil {
		return fmt.Errorf("capi settings: %w", err)
	}
	if !settings.Bool(SettingCAPIEnabled) {
		return nil
	}
	pixelID := settings[SettingPixelID]
	token := settings[SettingCAPIToken]
	if pixelID == "" || token == "" {
		return nil
	}

	payload := eventRequest{
		Data:          []Event{ev},
		TestEventCode: settings[SettingTestEventCode],
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("capi marshal: %w", err)
	}

	url := fmt.Sprintf("%s/%s/events?access_token=%s", c.baseURL, pixelID, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("capi request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("capi http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("capi error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// --- Conversions API types ---

// Event is a single CAPI event. EventID enables deduplication against
// the browser pixel.
type Event struct {
	EventName      string     `json:"event_name"`
	EventTime      int64      `json:"event_time"`
	EventID        string     `json:"event_id"`
	ActionSource   string     `json:"action_source"`
	EventSourceURL string     `json:"event_source_url,omitempty"`
	UserData       userData   `json:"user_data"`
	CustomData     customData `json:"custom_data"`
}

type userData struct {
	Phones []string `json:"ph,omitempty"`
	Names  []string `json:"fn,omitempty"`
	Cities []string `json:"ct,omitempty"`
}

type content struct {
	ID        string `json:"id"`
	Quantity  int    `json:"quantity"`
	ItemPrice int    `json:"item_price"`
}

type customData struct {
	Currency string    `json:"currency"`
	Value    int       `json:"value"`
	Contents []content `json:"contents"`
}

type eventRequest struct {
	Data          []Event `json:"data"`
	TestEventCode string  `json:"test_event_code,omitempty"`
}
