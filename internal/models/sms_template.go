// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SMSTemplate is a per-order-status notification message. The body may
// contain {{name}}, {{order_number}}, {{total}}, and {{tracking_number}}
// placeholders, substituted by the sms package at send time.
type SMSTemplate struct {
	ID        uuid.UUID   `json:"id"`
	Status    OrderStatus `json:"status"`
	Body      string      `json:"body"`
	IsEnabled bool        `json:"is_enabled"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// AdminSettings is a convenience map of the key/value settings table.
// Keys in use: fb_pixel_id, fb_pixel_enabled, fb_capi_token,
// fb_capi_enabled, fb_test_event_code.
type AdminSettings map[string]string

// Bool reads a settings key as a boolean ("true" is true, anything else false).
func (s AdminSettings) Bool(key string) bool {
	return s[key] == "true"
}
