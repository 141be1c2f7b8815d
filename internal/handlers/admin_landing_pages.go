// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"bonik/internal/builder"
	"bonik/internal/cache"
	"bonik/internal/models"
	"bonik/internal/slug"
	"bonik/internal/store"
)

// AdminLandingPages groups the landing-page editor handlers. Every
// mutation flushes the page's cached render so the public URL picks up
// the change within one request.
type AdminLandingPages struct {
	pages     *store.LandingPageStore
	pageCache *cache.PageCache
}

// NewAdminLandingPages creates a new AdminLandingPages handler group.
// pageCache may be nil in tests.
func NewAdminLandingPages(pages *store.LandingPageStore, pageCache *cache.PageCache) *AdminLandingPages {
	return &AdminLandingPages{pages: pages, pageCache: pageCache}
}

// ListPages returns all landing pages, newest first.
func (h *AdminLandingPages) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pages.List()
	if err != nil {
		slog.Error("list landing pages failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load pages")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

// GetPage returns one landing page with its full section tree.
func (h *AdminLandingPages) GetPage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// CreatePage adds an empty, unpublished landing page. The slug is
// derived from the title and de-duplicated.
func (h *AdminLandingPages) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Page title is required")
		return
	}

	s, err := slug.Unique(r.Context(), req.Title, h.pages.SlugExists)
	if err != nil {
		slog.Error("generate page slug failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create page")
		return
	}

	page := &models.LandingPage{
		Title:    req.Title,
		Slug:     s,
		Theme:    builder.DefaultTheme(),
		IsActive: true,
	}
	created, err := h.pages.Create(page)
	if err != nil {
		slog.Error("create landing page failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create page")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdatePage overwrites the editable fields of a page: title, attached
// products, sections, rows, theme, custom CSS, and the active flag. The
// slug never changes after creation; published links keep working.
func (h *AdminLandingPages) UpdatePage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}

	var req models.LandingPage
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	page.Title = req.Title
	page.ProductIDs = req.ProductIDs
	page.Sections = req.Sections
	page.Rows = req.Rows
	page.Theme = req.Theme
	page.CustomCSS = req.CustomCSS
	page.IsActive = req.IsActive
	page.Sections.Normalize()

	h.save(w, r, page)
}

// Publish flips the published flag. Unpublishing takes the public URL
// down immediately.
func (h *AdminLandingPages) Publish(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}

	var req struct {
		Published bool `json:"published"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	page.IsPublished = req.Published

	h.save(w, r, page)
}

// DeletePage removes a landing page and flushes its cached render.
func (h *AdminLandingPages) DeletePage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}
	if err := h.pages.Delete(page.ID); err != nil {
		slog.Error("delete landing page failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete page")
		return
	}
	h.invalidate(r, page.Slug)
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// AddSection appends a new section of the given type with its template
// defaults.
func (h *AdminLandingPages) AddSection(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}

	var req struct {
		Type string `json:"type"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	section, err := builder.NewSection(builder.SectionType(req.Type))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	page.Sections = page.Sections.Append(section)

	h.save(w, r, page)
}

// UpdateSection replaces a section's settings in place, keeping its
// position. The editor sends the full section payload.
func (h *AdminLandingPages) UpdateSection(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}

	var section builder.Section
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&section); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	section.ID = chi.URLParam(r, "sectionID")

	if err := page.Sections.Replace(section); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.save(w, r, page)
}

// MoveSection shifts a section one position up or down. Moving past
// either end is a no-op.
func (h *AdminLandingPages) MoveSection(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}

	var req struct {
		Direction string `json:"direction"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sectionID := chi.URLParam(r, "sectionID")
	var err error
	switch req.Direction {
	case "up":
		err = page.Sections.MoveUp(sectionID)
	case "down":
		err = page.Sections.MoveDown(sectionID)
	default:
		respondError(w, http.StatusBadRequest, "Direction must be up or down")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.save(w, r, page)
}

// RemoveSection deletes a section and closes the ordering gap.
func (h *AdminLandingPages) RemoveSection(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}

	sections, err := page.Sections.Remove(chi.URLParam(r, "sectionID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	page.Sections = sections

	h.save(w, r, page)
}

// save persists the page, flushes its cache, and responds with the
// updated page.
func (h *AdminLandingPages) save(w http.ResponseWriter, r *http.Request, page *models.LandingPage) {
	if err := h.pages.Update(page); err != nil {
		slog.Error("save landing page failed", "error", err, "slug", page.Slug)
		respondError(w, http.StatusInternalServerError, "Failed to save page")
		return
	}
	h.invalidate(r, page.Slug)
	respondJSON(w, http.StatusOK, page)
}

func (h *AdminLandingPages) invalidate(r *http.Request, slug string) {
	if h.pageCache != nil {
		h.pageCache.Invalidate(r.Context(), slug)
	}
}

// loadPage resolves the {id} route param to a landing page, writing the
// error response itself when it cannot. The section order invariant is
// restored on load so editor operations can rely on it.
func (h *AdminLandingPages) loadPage(w http.ResponseWriter, r *http.Request) (*models.LandingPage, bool) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid page id")
		return nil, false
	}
	page, err := h.pages.FindByID(id)
	if err != nil {
		slog.Error("find landing page failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to load page")
		return nil, false
	}
	if page == nil {
		respondError(w, http.StatusNotFound, "Page not found")
		return nil, false
	}
	page.Sections.Normalize()
	return page, true
}
