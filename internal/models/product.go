// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item. Prices are whole taka — the shop does not
// deal in poisha. Order items snapshot the name/image/price at purchase
// time, so later edits here never change historical orders.
type Product struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Description      *string    `json:"description,omitempty"`
	Price            int        `json:"price"`
	OriginalPrice    *int       `json:"original_price,omitempty"`
	CategoryID       *uuid.UUID `json:"category_id,omitempty"`
	Stock            int        `json:"stock"`
	Images           []string   `json:"images"`
	Tags             []string   `json:"tags"`
	IsFeatured       bool       `json:"is_featured"`
	IsNew            bool       `json:"is_new"`
	IsActive         bool       `json:"is_active"`
	Features         *string    `json:"features,omitempty"`
	Composition      *string    `json:"composition,omitempty"`
	CareInstructions *string    `json:"care_instructions,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// DiscountPercent returns the rounded discount relative to the original
// price, or 0 when there is no original price above the current one.
func (p *Product) DiscountPercent() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price {
		return 0
	}
	orig := *p.OriginalPrice
	return int(float64(orig-p.Price)/float64(orig)*100 + 0.5)
}

// FirstImage returns the primary product image URL, or empty if none.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Category groups products for storefront navigation.
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ImageURL  *string    `json:"image_url,omitempty"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder int        `json:"sort_order"`
	CreatedAt time.Time  `json:"created_at"`
}

// Banner is a homepage hero/slider entry managed from the back office.
type Banner struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Subtitle  *string   `json:"subtitle,omitempty"`
	ImageURL  string    `json:"image_url"`
	LinkURL   *string   `json:"link_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
