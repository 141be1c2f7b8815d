// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bonik/internal/builder"
	"bonik/internal/cache"
	"bonik/internal/models"
	"bonik/internal/render"
	"bonik/internal/store"
)

// Public groups the storefront handlers: the catalog JSON API consumed
// by the shop frontend, and the server-rendered landing pages. Landing
// pages are checked against the Valkey page cache before rendering.
type Public struct {
	products   *store.ProductStore
	categories *store.CategoryStore
	banners    *store.BannerStore
	coupons    *store.CouponStore
	pages      *store.LandingPageStore
	pageCache  *cache.PageCache
}

// NewPublic creates a new Public handler group. pageCache may be nil in
// tests; landing pages are then rendered on every request.
func NewPublic(products *store.ProductStore, categories *store.CategoryStore, banners *store.BannerStore, coupons *store.CouponStore, pages *store.LandingPageStore, pageCache *cache.PageCache) *Public {
	return &Public{
		products:   products,
		categories: categories,
		banners:    banners,
		coupons:    coupons,
		pages:      pages,
		pageCache:  pageCache,
	}
}

// ListProducts returns active catalog products, filterable by category,
// search term, and the featured/new flags.
func (p *Public) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.ProductFilter{
		Search:       q.Get("search"),
		ActiveOnly:   true,
		FeaturedOnly: q.Get("featured") == "true",
		NewOnly:      q.Get("new") == "true",
		Limit:        queryInt(q.Get("limit"), 50),
		Offset:       queryInt(q.Get("offset"), 0),
	}
	if cat := q.Get("category"); cat != "" {
		id, err := uuid.Parse(cat)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid category id")
			return
		}
		filter.CategoryID = &id
	}

	products, err := p.products.List(filter)
	if err != nil {
		slog.Error("list products failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": products})
}

// GetProduct returns one active product by its slug.
func (p *Public) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := p.products.FindBySlug(slug)
	if err != nil {
		slog.Error("find product failed", "error", err, "slug", slug)
		respondError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// ListCategories returns all categories in display order.
func (p *Public) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// ListBanners returns active homepage banners in display order.
func (p *Public) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := p.banners.ListActive()
	if err != nil {
		slog.Error("list banners failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load banners")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"banners": banners})
}

// ValidateCoupon checks a discount code against a cart subtotal and
// returns the discount it would apply. It never reveals why a code was
// rejected.
func (p *Public) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code     string `json:"code"`
		Subtotal int    `json:"subtotal"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	coupon, err := p.coupons.FindByCode(req.Code)
	if err != nil {
		slog.Error("find coupon failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to validate coupon")
		return
	}
	if coupon == nil || !coupon.Usable(time.Now(), req.Subtotal) {
		respondJSON(w, http.StatusOK, map[string]any{"valid": false})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"valid":    true,
		"code":     coupon.Code,
		"discount": coupon.DiscountFor(req.Subtotal),
	})
}

// LandingPage serves a published landing page as a full HTML document,
// cached whole-page in Valkey.
func (p *Public) LandingPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if p.pageCache != nil {
		if cached, ok := p.pageCache.Get(ctx, slug); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(cached)
			return
		}
	}

	page, err := p.pages.FindBySlug(slug)
	if err != nil {
		slog.Error("find landing page failed", "error", err, "slug", slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if page == nil || !page.Servable() {
		http.NotFound(w, r)
		return
	}

	products, err := p.landingProducts(page)
	if err != nil {
		slog.Error("load landing products failed", "error", err, "slug", slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	html, err := render.Landing(page, products, time.Now())
	if err != nil {
		slog.Error("render landing page failed", "error", err, "slug", slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if p.pageCache != nil {
		p.pageCache.Set(ctx, slug, html)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// landingProducts loads every catalog product the page references: its
// attached product list plus any product IDs embedded in sections.
func (p *Public) landingProducts(page *models.LandingPage) (map[uuid.UUID]*models.Product, error) {
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	add := func(id uuid.UUID) {
		if id != uuid.Nil && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, id := range page.ProductIDs {
		add(id)
	}
	for i := range page.Sections {
		var ref string
		switch s := page.Sections[i].Settings.(type) {
		case *builder.ProductInfoSettings:
			ref = s.ProductID
		case *builder.CheckoutFormSettings:
			ref = s.ProductID
		}
		if ref == "" {
			continue
		}
		if id, err := uuid.Parse(ref); err == nil {
			add(id)
		}
	}

	if len(ids) == 0 {
		return nil, nil
	}

	found, err := p.products.FindActiveByIDs(ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*models.Product, len(found))
	for id := range found {
		prod := found[id]
		out[id] = &prod
	}
	return out, nil
}

// queryInt parses a query parameter as an int with a fallback.
func queryInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
