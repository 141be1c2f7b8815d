// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package invoice renders order invoices as HTML and converts them to
// PDF with headless Chrome for printing and courier handover slips.
package invoice

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"bonik/internal/models"
)

// detectChromePath finds the Chrome/Chromium executable. The configured
// path wins; otherwise common install locations are probed.
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Generator renders invoices for a shop.
type Generator struct {
	siteName   string
	chromePath string
}

// NewGenerator creates a Generator. chromePath may be empty, in which
// case Chrome is auto-detected at generation time.
func NewGenerator(siteName, chromePath string) *Generator {
	return &Generator{siteName: siteName, chromePath: chromePath}
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; color: #111; margin: 40px; }
  .header { display: flex; justify-content: space-between; border-bottom: 2px solid #111; padding-bottom: 16px; }
  .shop { font-size: 24px; font-weight: bold; }
  .meta { text-align: right; font-size: 13px; }
  .section { margin-top: 24px; }
  .label { font-size: 11px; text-transform: uppercase; color: #666; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th { text-align: left; font-size: 11px; text-transform: uppercase; color: #666; border-bottom: 1px solid #ccc; padding: 6px 4px; }
  td { padding: 8px 4px; border-bottom: 1px solid #eee; font-size: 13px; }
  .num { text-align: right; }
  .totals { margin-top: 16px; width: 280px; margin-left: auto; font-size: 13px; }
  .totals div { display: flex; justify-content: space-between; padding: 3px 0; }
  .grand { font-weight: bold; border-top: 1px solid #111; padding-top: 6px !important; }
  .cod { margin-top: 24px; padding: 12px; background: #f5f5f5; font-size: 14px; font-weight: bold; }
</style>
</head>
<body>
  <div class="header">
    <div class="shop">{{.SiteName}}</div>
    <div class="meta">
      <div>Invoice {{.Order.OrderNumber}}</div>
      <div>{{.Date}}</div>
      <div>Status: {{.Order.Status}}</div>
    </div>
  </div>

  <div class="section">
    <div class="label">Deliver to</div>
    <div>{{.Order.ShippingName}}</div>
    <div>{{.Order.ShippingPhone}}</div>
    <div>{{.Order.ShippingStreet}}, {{.Order.ShippingCity}}, {{.Order.ShippingDistrict}}</div>
  </div>

  <table>
    <tr><th>Item</th><th class="num">Price</th><th class="num">Qty</th><th class="num">Total</th></tr>
    {{range .Order.Items}}
    <tr>
      <td>{{.ProductName}}</td>
      <td class="num">Tk {{.Price}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">Tk {{.LineTotal}}</td>
    </tr>
    {{end}}
  </table>

  <div class="totals">
    <div><span>Subtotal</span><span>Tk {{.Order.Subtotal}}</span></div>
    <div><span>Shipping</span><span>Tk {{.Order.ShippingCost}}</span></div>
    {{if .Order.Discount}}<div><span>Discount{{if .Order.CouponCode}} ({{.Order.CouponCode}}){{end}}</span><span>-Tk {{.Order.Discount}}</span></div>{{end}}
    <div class="grand"><span>Total</span><span>Tk {{.Order.Total}}</span></div>
  </div>

  {{if .CODAmount}}<div class="cod">Cash on delivery: Tk {{.CODAmount}}</div>{{end}}
</body>
</html>`))

// RenderHTML produces the invoice markup for an order.
func (g *Generator) RenderHTML(o *models.Order) (string, error) {
	var buf bytes.Buffer
	err := invoiceTmpl.Execute(&buf, struct {
		SiteName  string
		Order     *models.Order
		Date      string
		CODAmount int
	}{
		SiteName:  g.siteName,
		Order:     o,
		Date:      o.CreatedAt.Format("2 Jan 2006"),
		CODAmount: o.CODAmount(),
	})
	if err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF renders the invoice and prints it to an A4 PDF with
// headless Chrome.
func (g *Generator) GeneratePDF(ctx context.Context, o *models.Order) ([]byte, error) {
	html, err := g.RenderHTML(o)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
	)
	if path := detectChromePath(g.chromePath); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdf []byte
	err = chromedp.Run(chromeCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print invoice pdf: %w", err)
	}
	return pdf, nil
}
