// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bonik/internal/models"
)

// createTestPage drives the editor handlers to create a page.
func createTestPage(t *testing.T, env *testEnv, title string) *models.LandingPage {
	t.Helper()

	body := strings.NewReader(`{"title": ` + jsonString(title) + `}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/landing-pages", body)
	rec := httptest.NewRecorder()

	env.AdminPages.CreatePage(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create page: got %d — body: %s", rec.Code, rec.Body.String())
	}
	var page models.LandingPage
	if err := json.NewDecoder(rec.Body).Decode(&page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return &page
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// TestLandingPageEditorFlow creates a page, adds sections, moves one,
// and publishes — the full editor lifecycle.
func TestLandingPageEditorFlow(t *testing.T) {
	env := newTestEnv(t)

	cleanPages(t, env.DB, "test-editor-flow-campaign")
	t.Cleanup(func() { cleanPages(t, env.DB, "test-editor-flow-campaign") })

	page := createTestPage(t, env, "Test Editor Flow Campaign")
	if page.Slug != "test-editor-flow-campaign" {
		t.Fatalf("slug: got %q, want derived from title", page.Slug)
	}
	if page.IsPublished {
		t.Error("new page should start unpublished")
	}

	// Add two sections.
	for _, kind := range []string{"hero-product", "checkout-form"} {
		body := strings.NewReader(`{"type": "` + kind + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/admin/landing-pages/"+page.ID.String()+"/sections", body)
		req = withChiURLParam(req, "id", page.ID.String())
		rec := httptest.NewRecorder()

		env.AdminPages.AddSection(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("add %s section: got %d — body: %s", kind, rec.Code, rec.Body.String())
		}
	}

	reloaded, err := env.Pages.FindByID(page.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload page: %v", err)
	}
	if len(reloaded.Sections) != 2 {
		t.Fatalf("sections: got %d, want 2", len(reloaded.Sections))
	}
	if reloaded.Sections[0].Type != "hero-product" || reloaded.Sections[1].Type != "checkout-form" {
		t.Fatalf("section order: got %s, %s", reloaded.Sections[0].Type, reloaded.Sections[1].Type)
	}

	// Move the checkout form up.
	moveBody := strings.NewReader(`{"direction": "up"}`)
	req := httptest.NewRequest(http.MethodPost,
		"/api/admin/landing-pages/"+page.ID.String()+"/sections/"+reloaded.Sections[1].ID+"/move", moveBody)
	req = withChiURLParams(req, "id", page.ID.String(), "sectionID", reloaded.Sections[1].ID)
	rec := httptest.NewRecorder()

	env.AdminPages.MoveSection(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("move section: got %d — body: %s", rec.Code, rec.Body.String())
	}

	reloaded, _ = env.Pages.FindByID(page.ID)
	if reloaded.Sections[0].Type != "checkout-form" {
		t.Errorf("after move: first section is %s, want checkout-form", reloaded.Sections[0].Type)
	}
	if reloaded.Sections[0].Order != 0 || reloaded.Sections[1].Order != 1 {
		t.Errorf("orders not contiguous: %d, %d", reloaded.Sections[0].Order, reloaded.Sections[1].Order)
	}

	// Publish.
	pubBody := strings.NewReader(`{"published": true}`)
	req = httptest.NewRequest(http.MethodPost, "/api/admin/landing-pages/"+page.ID.String()+"/publish", pubBody)
	req = withChiURLParam(req, "id", page.ID.String())
	rec = httptest.NewRecorder()

	env.AdminPages.Publish(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("publish: got %d — body: %s", rec.Code, rec.Body.String())
	}
	reloaded, _ = env.Pages.FindByID(page.ID)
	if !reloaded.IsPublished {
		t.Error("page should be published")
	}
}

// TestAddSectionUnknownType verifies the editor rejects unknown section
// kinds.
func TestAddSectionUnknownType(t *testing.T) {
	env := newTestEnv(t)

	cleanPages(t, env.DB, "test-unknown-section-page")
	t.Cleanup(func() { cleanPages(t, env.DB, "test-unknown-section-page") })

	page := createTestPage(t, env, "Test Unknown Section Page")

	body := strings.NewReader(`{"type": "hologram"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/landing-pages/"+page.ID.String()+"/sections", body)
	req = withChiURLParam(req, "id", page.ID.String())
	rec := httptest.NewRecorder()

	env.AdminPages.AddSection(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// TestRemoveSectionClosesGap verifies removal re-sequences the rest.
func TestRemoveSectionClosesGap(t *testing.T) {
	env := newTestEnv(t)

	cleanPages(t, env.DB, "test-remove-section-page")
	t.Cleanup(func() { cleanPages(t, env.DB, "test-remove-section-page") })

	page := createTestPage(t, env, "Test Remove Section Page")

	for _, kind := range []string{"text-block", "divider", "cta-banner"} {
		body := strings.NewReader(`{"type": "` + kind + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/sections", body)
		req = withChiURLParam(req, "id", page.ID.String())
		rec := httptest.NewRecorder()
		env.AdminPages.AddSection(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("add %s: got %d", kind, rec.Code)
		}
	}

	reloaded, _ := env.Pages.FindByID(page.ID)
	middle := reloaded.Sections[1].ID

	req := httptest.NewRequest(http.MethodDelete, "/sections/"+middle, nil)
	req = withChiURLParams(req, "id", page.ID.String(), "sectionID", middle)
	rec := httptest.NewRecorder()

	env.AdminPages.RemoveSection(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("remove: got %d — body: %s", rec.Code, rec.Body.String())
	}
	reloaded, _ = env.Pages.FindByID(page.ID)
	if len(reloaded.Sections) != 2 {
		t.Fatalf("sections: got %d, want 2", len(reloaded.Sections))
	}
	for i, s := range reloaded.Sections {
		if s.Order != i {
			t.Errorf("section %d has order %d", i, s.Order)
		}
	}
	if reloaded.Sections[0].Type != "text-block" || reloaded.Sections[1].Type != "cta-banner" {
		t.Errorf("wrong sections survived: %s, %s", reloaded.Sections[0].Type, reloaded.Sections[1].Type)
	}
}
