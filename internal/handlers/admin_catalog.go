// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"bonik/internal/cache"
	"bonik/internal/models"
	"bonik/internal/slug"
	"bonik/internal/store"
)

// AdminCatalog groups the back-office CRUD handlers for products,
// categories, banners, and coupons. Product and category slugs are
// generated server-side and made unique against their table.
type AdminCatalog struct {
	products   *store.ProductStore
	categories *store.CategoryStore
	banners    *store.BannerStore
	coupons    *store.CouponStore
	pageCache  *cache.PageCache
}

// NewAdminCatalog creates a new AdminCatalog handler group. pageCache
// may be nil; landing pages are then never invalidated on product edits.
func NewAdminCatalog(products *store.ProductStore, categories *store.CategoryStore, banners *store.BannerStore, coupons *store.CouponStore, pageCache *cache.PageCache) *AdminCatalog {
	return &AdminCatalog{
		products:   products,
		categories: categories,
		banners:    banners,
		coupons:    coupons,
		pageCache:  pageCache,
	}
}

// ListProducts returns all products, active or not, for the admin grid.
func (h *AdminCatalog) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ProductFilter{
		Search: q.Get("search"),
		Limit:  queryInt(q.Get("limit"), 100),
		Offset: queryInt(q.Get("offset"), 0),
	}

	products, err := h.products.List(filter)
	if err != nil {
		slog.Error("admin list products failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}
	total, err := h.products.Count()
	if err != nil {
		slog.Error("count products failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": products, "total": total})
}

// GetProduct returns one product by id.
func (h *AdminCatalog) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	product, err := h.products.FindByID(id)
	if err != nil {
		slog.Error("find product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// CreateProduct adds a catalog product. A missing slug is derived from
// the name and de-duplicated.
func (h *AdminCatalog) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := decodeJSON(w, r, &p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		respondError(w, http.StatusBadRequest, "Product name is required")
		return
	}
	if p.Price <= 0 {
		respondError(w, http.StatusBadRequest, "Price must be positive")
		return
	}

	if p.Slug == "" {
		s, err := slug.Unique(r.Context(), p.Name, h.products.SlugExists)
		if err != nil {
			slog.Error("generate product slug failed", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to create product")
			return
		}
		p.Slug = s
	}

	created, err := h.products.Create(&p)
	if err != nil {
		slog.Error("create product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateProduct overwrites a product's editable fields. Cached landing
// pages are flushed because they may embed the product's price.
func (h *AdminCatalog) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	existing, err := h.products.FindByID(id)
	if err != nil {
		slog.Error("find product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	var p models.Product
	if err := decodeJSON(w, r, &p); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p.ID = id
	if p.Slug == "" {
		p.Slug = existing.Slug
	}

	if err := h.products.Update(&p); err != nil {
		slog.Error("update product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if h.pageCache != nil {
		h.pageCache.InvalidateAll(r.Context())
	}
	respondJSON(w, http.StatusOK, &p)
}

// DeleteProduct removes a product from the catalog.
func (h *AdminCatalog) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	if err := h.products.Delete(id); err != nil {
		slog.Error("delete product failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if h.pageCache != nil {
		h.pageCache.InvalidateAll(r.Context())
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// ListCategories returns all categories for the admin tree.
func (h *AdminCatalog) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// CreateCategory adds a category, deriving a unique slug from the name
// when none is supplied.
func (h *AdminCatalog) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if err := decodeJSON(w, r, &c); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(c.Name) == "" {
		respondError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	if c.Slug == "" {
		s, err := slug.Unique(r.Context(), c.Name, h.categories.SlugExists)
		if err != nil {
			slog.Error("generate category slug failed", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to create category")
			return
		}
		c.Slug = s
	}

	created, err := h.categories.Create(&c)
	if err != nil {
		slog.Error("create category failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateCategory overwrites a category.
func (h *AdminCatalog) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	existing, err := h.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	var c models.Category
	if err := decodeJSON(w, r, &c); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c.ID = id
	if c.Slug == "" {
		c.Slug = existing.Slug
	}

	if err := h.categories.Update(&c); err != nil {
		slog.Error("update category failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}
	respondJSON(w, http.StatusOK, &c)
}

// DeleteCategory removes a category. Products keep running; their
// category reference is nulled by the schema.
func (h *AdminCatalog) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category id")
		return
	}
	if err := h.categories.Delete(id); err != nil {
		slog.Error("delete category failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// ListBanners returns every banner, including inactive ones.
func (h *AdminCatalog) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.banners.List()
	if err != nil {
		slog.Error("list banners failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load banners")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"banners": banners})
}

// CreateBanner adds a homepage banner.
func (h *AdminCatalog) CreateBanner(w http.ResponseWriter, r *http.Request) {
	var b models.Banner
	if err := decodeJSON(w, r, &b); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if b.Title == "" || b.ImageURL == "" {
		respondError(w, http.StatusBadRequest, "Title and image are required")
		return
	}

	created, err := h.banners.Create(&b)
	if err != nil {
		slog.Error("create banner failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create banner")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateBanner overwrites a banner.
func (h *AdminCatalog) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid banner id")
		return
	}
	var b models.Banner
	if err := decodeJSON(w, r, &b); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b.ID = id

	if err := h.banners.Update(&b); err != nil {
		slog.Error("update banner failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update banner")
		return
	}
	respondJSON(w, http.StatusOK, &b)
}

// DeleteBanner removes a banner.
func (h *AdminCatalog) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid banner id")
		return
	}
	if err := h.banners.Delete(id); err != nil {
		slog.Error("delete banner failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete banner")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// ListCoupons returns all discount codes.
func (h *AdminCatalog) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.List()
	if err != nil {
		slog.Error("list coupons failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load coupons")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"coupons": coupons})
}

// CreateCoupon adds a discount code. Codes are stored uppercase.
func (h *AdminCatalog) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var c models.Coupon
	if err := decodeJSON(w, r, &c); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	if c.Code == "" {
		respondError(w, http.StatusBadRequest, "Coupon code is required")
		return
	}
	if c.DiscountType != models.DiscountPercentage && c.DiscountType != models.DiscountFixed {
		respondError(w, http.StatusBadRequest, "Discount type must be percentage or fixed")
		return
	}
	if c.DiscountValue <= 0 || (c.DiscountType == models.DiscountPercentage && c.DiscountValue > 100) {
		respondError(w, http.StatusBadRequest, "Invalid discount value")
		return
	}

	created, err := h.coupons.Create(&c)
	if err != nil {
		slog.Error("create coupon failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create coupon")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateCoupon overwrites a coupon.
func (h *AdminCatalog) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid coupon id")
		return
	}
	var c models.Coupon
	if err := decodeJSON(w, r, &c); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c.ID = id
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))

	if err := h.coupons.Update(&c); err != nil {
		slog.Error("update coupon failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update coupon")
		return
	}
	respondJSON(w, http.StatusOK, &c)
}

// DeleteCoupon removes a discount code.
func (h *AdminCatalog) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid coupon id")
		return
	}
	if err := h.coupons.Delete(id); err != nil {
		slog.Error("delete coupon failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete coupon")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}
