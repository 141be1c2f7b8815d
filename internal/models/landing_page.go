// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"

	"bonik/internal/builder"
)

// LandingPage is a campaign page assembled from builder sections and
// served publicly at /lp/{slug} once published. The section, row, and
// theme payloads are stored as JSONB and decoded through the builder
// package, which owns the tagged-union schema.
type LandingPage struct {
	ID         uuid.UUID             `json:"id"`
	Title      string                `json:"title"`
	Slug       string                `json:"slug"`
	ProductIDs []uuid.UUID           `json:"product_ids"`
	Sections   builder.SectionList   `json:"sections"`
	Rows       []builder.Row         `json:"rows"`
	Theme      builder.ThemeSettings `json:"theme_settings"`
	CustomCSS  *string               `json:"custom_css,omitempty"`
	IsPublished bool                 `json:"is_published"`
	IsActive    bool                 `json:"is_active"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Servable reports whether the page may be rendered publicly.
func (p *LandingPage) Servable() bool {
	return p.IsPublished && p.IsActive
}
