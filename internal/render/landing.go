// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns a stored landing page into a complete HTML
// document. Each section kind has its own template fragment, compiled
// once at package init; the theme token record is threaded into every
// fragment as CSS custom properties plus inline colors. Sections are
// rendered strictly in stored order — the renderer never re-sorts.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"bonik/internal/builder"
	"bonik/internal/models"
)

// Landing renders a publishable landing page. products maps catalog IDs
// to live product records for the product-info and checkout-form
// sections; now anchors countdown math so output is deterministic in
// tests. Unknown section kinds render nothing but are logged.
func Landing(page *models.LandingPage, products map[uuid.UUID]*models.Product, now time.Time) ([]byte, error) {
	theme := page.Theme.OrDefault()

	var body bytes.Buffer
	for i := range page.Sections {
		sec := &page.Sections[i]
		if sec.Settings == nil {
			slog.Warn("skipping unknown section type",
				"page", page.Slug, "type", sec.Type, "section_id", sec.ID)
			continue
		}
		if err := renderSection(&body, sec, page, products, theme, now); err != nil {
			return nil, fmt.Errorf("render section %s: %w", sec.Type, err)
		}
	}

	for i := range page.Rows {
		row := &page.Rows[i]
		if !row.Valid() {
			slog.Warn("skipping row with mismatched column count",
				"page", page.Slug, "row_id", row.ID, "layout", row.Layout)
			continue
		}
		if err := rowTmpl.Execute(&body, rowData(row)); err != nil {
			return nil, fmt.Errorf("render row: %w", err)
		}
	}

	data := docData{
		Title:     page.Title,
		Theme:     theme,
		CustomCSS: template.CSS(deref(page.CustomCSS)),
		Body:      template.HTML(body.String()),
	}

	var out bytes.Buffer
	if err := docTmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return out.Bytes(), nil
}

// docData feeds the outer document template.
type docData struct {
	Title     string
	Theme     builder.ThemeSettings
	CustomCSS template.CSS
	Body      template.HTML
}

func renderSection(w *bytes.Buffer, sec *builder.Section, page *models.LandingPage, products map[uuid.UUID]*models.Product, theme builder.ThemeSettings, now time.Time) error {
	switch s := sec.Settings.(type) {
	case *builder.HeroProductSettings:
		return heroTmpl.Execute(w, struct {
			*builder.HeroProductSettings
			Theme builder.ThemeSettings
		}{s, theme})

	case *builder.ImageGallerySettings:
		return galleryTmpl.Execute(w, struct {
			*builder.ImageGallerySettings
			ColumnStyle string
		}{s, gridColumns(s.Columns)})

	case *builder.FeatureBadgesSettings:
		return badgesTmpl.Execute(w, struct {
			*builder.FeatureBadgesSettings
			ColumnStyle string
		}{s, gridColumns(s.Columns)})

	case *builder.TextBlockSettings:
		return textTmpl.Execute(w, s)

	case *builder.ProductInfoSettings:
		product := lookupProduct(products, s.ProductID)
		if product == nil {
			slog.Warn("product-info section references missing product",
				"page", page.Slug, "product_id", s.ProductID)
			return nil
		}
		return productInfoTmpl.Execute(w, struct {
			*builder.ProductInfoSettings
			Product *models.Product
			Theme   builder.ThemeSettings
		}{s, product, theme})

	case *builder.CheckoutFormSettings:
		product := lookupProduct(products, s.ProductID)
		return checkoutTmpl.Execute(w, struct {
			*builder.CheckoutFormSettings
			Product     *models.Product
			OrderSource string
			Theme       builder.ThemeSettings
		}{s, product, "landing-page:" + page.Slug, theme})

	case *builder.CTABannerSettings:
		return ctaTmpl.Execute(w, struct {
			*builder.CTABannerSettings
			Theme builder.ThemeSettings
		}{s, theme})

	case *builder.TestimonialsSettings:
		return testimonialsTmpl.Execute(w, struct {
			*builder.TestimonialsSettings
			ColumnStyle string
		}{s, gridColumns(s.Columns)})

	case *builder.FAQSettings:
		return faqTmpl.Execute(w, s)

	case *builder.ImageTextSettings:
		return imageTextTmpl.Execute(w, struct {
			*builder.ImageTextSettings
			Theme builder.ThemeSettings
		}{s, theme})

	case *builder.VideoSettings:
		return videoTmpl.Execute(w, s)

	case *builder.CountdownSettings:
		end := builder.ParseEndDate(s.EndDate)
		return countdownTmpl.Execute(w, struct {
			*builder.CountdownSettings
			Remaining builder.Remaining
			EndMillis int64
			Elapsed   bool
		}{s, builder.CountdownRemaining(end, now), end.UnixMilli(), !end.After(now)})

	case *builder.DividerSettings:
		return dividerTmpl.Execute(w, s)

	case *builder.SpacerSettings:
		return spacerTmpl.Execute(w, s)
	}

	// Settings types are exhaustively handled above; a new builder type
	// without a renderer branch lands here.
	slog.Warn("no renderer for section type", "page", page.Slug, "type", sec.Type)
	return nil
}

// rowData flattens a row for the row template, pairing each column with
// its layout width.
func rowData(row *builder.Row) map[string]any {
	widths := row.Layout.Widths()
	cols := make([]map[string]any, len(row.Columns))
	for i := range row.Columns {
		cols[i] = map[string]any{
			"Column": &row.Columns[i],
			"Width":  widths[i],
		}
	}
	return map[string]any{"Row": row, "Columns": cols}
}

// lookupProduct resolves a section's product reference, tolerating empty
// and malformed IDs.
func lookupProduct(products map[uuid.UUID]*models.Product, id string) *models.Product {
	if id == "" {
		return nil
	}
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	return products[pid]
}

// gridColumns converts a column count into a CSS grid template,
// defaulting to three columns.
func gridColumns(n int) string {
	if n < 1 {
		n = 3
	}
	return fmt.Sprintf("repeat(%d, 1fr)", n)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// renderWidget produces the HTML for one row widget. Widget settings are
// schemaless, so each kind pulls the keys it knows; unknown kinds render
// nothing.
func renderWidget(w builder.Widget) template.HTML {
	get := func(key string) string {
		v, _ := w.Settings[key].(string)
		return v
	}

	var b strings.Builder
	esc := template.HTMLEscapeString

	switch w.Type {
	case "heading":
		level := get("level")
		if level == "" {
			level = "h2"
		}
		if level != "h1" && level != "h2" && level != "h3" && level != "h4" {
			level = "h2"
		}
		fmt.Fprintf(&b, "<%s class=\"bnk-widget-heading\">%s</%s>", level, esc(get("text")), level)
	case "text":
		fmt.Fprintf(&b, "<p class=\"bnk-widget-text\">%s</p>", esc(get("content")))
	case "image":
		if src := get("src"); src != "" {
			fmt.Fprintf(&b, "<img class=\"bnk-widget-image\" src=%q alt=%q>", esc(src), esc(get("alt")))
		}
	case "button":
		href := get("link")
		if href == "" {
			href = "#"
		}
		fmt.Fprintf(&b, "<a class=\"bnk-btn\" href=%q>%s</a>", esc(href), esc(get("text")))
	case "divider":
		b.WriteString("<hr class=\"bnk-widget-divider\">")
	case "spacer":
		height := get("height")
		if height == "" {
			height = "24px"
		}
		fmt.Fprintf(&b, "<div style=\"height:%s\"></div>", esc(height))
	default:
		return ""
	}

	return template.HTML(b.String())
}
