// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"bonik/internal/builder"
	"bonik/internal/models"
)

func testPage(t *testing.T, sections ...builder.Section) *models.LandingPage {
	t.Helper()
	list := builder.SectionList{}
	for _, s := range sections {
		list = list.Append(s)
	}
	return &models.LandingPage{
		ID:          uuid.New(),
		Title:       "Eid Collection",
		Slug:        "eid-collection",
		Sections:    list,
		Theme:       builder.DefaultTheme(),
		IsPublished: true,
		IsActive:    true,
	}
}

func mustSection(t *testing.T, typ builder.SectionType) builder.Section {
	t.Helper()
	s, err := builder.NewSection(typ)
	if err != nil {
		t.Fatalf("NewSection(%s): %v", typ, err)
	}
	return s
}

func TestLandingRendersFullDocument(t *testing.T) {
	hero := mustSection(t, builder.SectionHeroProduct)
	settings := hero.Settings.(*builder.HeroProductSettings)
	settings.Title = "Premium Panjabi"
	settings.Price = "1350"
	settings.OriginalPrice = "1800"

	page := testPage(t, hero)

	html, err := Landing(page, nil, time.Now())
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}

	out := string(html)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Eid Collection</title>",
		"Premium Panjabi",
		"৳1350",
		"৳1800",
		"--bnk-accent:#ef4444",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestLandingCheckoutFormTargetsOrderAPI(t *testing.T) {
	form := mustSection(t, builder.SectionCheckoutForm)
	page := testPage(t, form)

	html, err := Landing(page, nil, time.Now())
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}

	out := string(html)
	if !strings.Contains(out, `action="/api/orders"`) {
		t.Error("checkout form should post to /api/orders")
	}
	if !strings.Contains(out, "landing-page:eid-collection") {
		t.Error("checkout form should carry the landing-page order source")
	}
	// Default form fields from the section template.
	for _, field := range []string{`name="name"`, `name="phone"`, `name="address"`} {
		if !strings.Contains(out, field) {
			t.Errorf("checkout form missing field %s", field)
		}
	}
}

func TestLandingCountdown(t *testing.T) {
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)

	t.Run("future deadline renders remaining and script", func(t *testing.T) {
		cd := mustSection(t, builder.SectionCountdown)
		cd.Settings.(*builder.CountdownSettings).EndDate = "2026-02-22T12:30:00Z"

		html, err := Landing(testPage(t, cd), nil, now)
		if err != nil {
			t.Fatalf("Landing: %v", err)
		}

		out := string(html)
		if !strings.Contains(out, `data-unit="days">2</span>`) {
			t.Error("expected 2 days remaining")
		}
		if !strings.Contains(out, `data-unit="minutes">30</span>`) {
			t.Error("expected 30 minutes remaining")
		}
		if !strings.Contains(out, "setInterval") {
			t.Error("future countdown should include the ticking script")
		}
	})

	t.Run("elapsed deadline clamps to zero without script", func(t *testing.T) {
		cd := mustSection(t, builder.SectionCountdown)
		cd.Settings.(*builder.CountdownSettings).EndDate = "2026-02-01T00:00:00Z"

		html, err := Landing(testPage(t, cd), nil, now)
		if err != nil {
			t.Fatalf("Landing: %v", err)
		}

		out := string(html)
		if !strings.Contains(out, `data-unit="days">0</span>`) {
			t.Error("elapsed countdown should show zero days")
		}
		if strings.Contains(out, "setInterval") {
			t.Error("elapsed countdown should not tick")
		}
	})
}

func TestLandingProductInfo(t *testing.T) {
	desc := "Soft cotton, breathable weave."
	product := &models.Product{
		ID:    uuid.New(),
		Name:  "Classic Punjabi",
		Price: 1450,
	}
	product.Description = &desc

	pi := mustSection(t, builder.SectionProductInfo)
	pi.Settings.(*builder.ProductInfoSettings).ProductID = product.ID.String()

	products := map[uuid.UUID]*models.Product{product.ID: product}

	html, err := Landing(testPage(t, pi), products, time.Now())
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}

	out := string(html)
	if !strings.Contains(out, "Classic Punjabi") {
		t.Error("expected product name in output")
	}
	if !strings.Contains(out, "৳1450") {
		t.Error("expected product price in output")
	}
	if !strings.Contains(out, desc) {
		t.Error("expected product description in output")
	}
}

func TestLandingSkipsMissingProduct(t *testing.T) {
	pi := mustSection(t, builder.SectionProductInfo)
	pi.Settings.(*builder.ProductInfoSettings).ProductID = uuid.NewString()

	html, err := Landing(testPage(t, pi), nil, time.Now())
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}
	if strings.Contains(string(html), "<section") {
		t.Error("missing product reference should render nothing for the section")
	}
}

func TestLandingSkipsUnknownSectionType(t *testing.T) {
	raw := []byte(`[{"id":"x1","type":"mystery-widget","order":0,"settings":{"foo":"bar"}}]`)
	var list builder.SectionList
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("unmarshal sections: %v", err)
	}

	page := testPage(t)
	page.Sections = list

	html, err := Landing(page, nil, time.Now())
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}
	if strings.Contains(string(html), "mystery-widget") {
		t.Error("unknown section type should render nothing")
	}
	if !strings.Contains(string(html), "<!DOCTYPE html>") {
		t.Error("document should still render around the skipped section")
	}
}

func TestLandingRendersSectionsInStoredOrder(t *testing.T) {
	first := mustSection(t, builder.SectionTextBlock)
	first.Settings.(*builder.TextBlockSettings).Content = "FIRST-BLOCK"
	second := mustSection(t, builder.SectionTextBlock)
	second.Settings.(*builder.TextBlockSettings).Content = "SECOND-BLOCK"

	page := testPage(t, first, second)

	html, err := Landing(page, nil, time.Now())
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}

	out := string(html)
	i, j := strings.Index(out, "FIRST-BLOCK"), strings.Index(out, "SECOND-BLOCK")
	if i == -1 || j == -1 {
		t.Fatal("both text blocks should render")
	}
	if i > j {
		t.Error("sections rendered out of stored order")
	}
}

func TestLandingRows(t *testing.T) {
	row, err := builder.NewRow(builder.LayoutHalves)
	if err != nil {
		t.Fatalf("NewRow: %v", err)
	}
	row.Columns[0].Widgets = []builder.Widget{
		{ID: "w1", Type: "heading", Settings: map[string]interface{}{"text": "Why choose us", "level": "h2"}},
	}
	row.Columns[1].Widgets = []builder.Widget{
		{ID: "w2", Type: "button", Settings: map[string]interface{}{"text": "Shop now", "link": "#checkout"}},
		{ID: "w3", Type: "unknown-kind", Settings: map[string]interface{}{}},
	}

	page := testPage(t)
	page.Rows = []builder.Row{row}

	html, err := Landing(page, nil, time.Now())
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}

	out := string(html)
	if !strings.Contains(out, "<h2 class=\"bnk-widget-heading\">Why choose us</h2>") {
		t.Error("heading widget not rendered")
	}
	if !strings.Contains(out, `href="#checkout"`) {
		t.Error("button widget not rendered")
	}
	if !strings.Contains(out, "width:50%") {
		t.Error("halves layout should yield 50% columns")
	}
}

func TestLandingSkipsInvalidRow(t *testing.T) {
	row, err := builder.NewRow(builder.LayoutThirds)
	if err != nil {
		t.Fatalf("NewRow: %v", err)
	}
	row.Columns = row.Columns[:1] // hand-edited payload with a missing column

	page := testPage(t)
	page.Rows = []builder.Row{row}

	html, err := Landing(page, nil, time.Now())
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}
	if strings.Contains(string(html), "33.333%") {
		t.Error("invalid row should be skipped")
	}
}

func TestLandingCustomCSS(t *testing.T) {
	css := ".bnk-btn{letter-spacing:2px}"
	page := testPage(t)
	page.CustomCSS = &css

	html, err := Landing(page, nil, time.Now())
	if err != nil {
		t.Fatalf("Landing: %v", err)
	}
	if !strings.Contains(string(html), css) {
		t.Error("custom CSS should be embedded in the document")
	}
}
