package store

import (
	"testing"

	"bonik/internal/builder"
	"bonik/internal/models"
)

func TestLandingPageRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewLandingPageStore(db)
	t.Cleanup(func() { cleanLandingPages(t, db, "test-eid-campaign") })

	hero, err := builder.NewSection(builder.SectionHeroProduct)
	if err != nil {
		t.Fatalf("NewSection: %v", err)
	}
	form, err := builder.NewSection(builder.SectionCheckoutForm)
	if err != nil {
		t.Fatalf("NewSection: %v", err)
	}
	var sections builder.SectionList
	sections = sections.Append(hero).Append(form)

	created, err := s.Create(&models.LandingPage{
		Title:    "Test Eid Campaign",
		Slug:     "test-eid-campaign",
		Sections: sections,
		Theme:    builder.DefaultTheme(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Servable() {
		t.Error("unpublished page must not be servable")
	}

	// The JSONB payload must decode back into typed sections.
	found, err := s.FindBySlug("test-eid-campaign")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil {
		t.Fatal("expected page by slug")
	}
	if len(found.Sections) != 2 {
		t.Fatalf("sections: got %d, want 2", len(found.Sections))
	}
	if found.Sections[0].Type != builder.SectionHeroProduct {
		t.Errorf("first section type: got %q", found.Sections[0].Type)
	}
	if err := found.Sections.CheckOrder(); err != nil {
		t.Errorf("section order after round-trip: %v", err)
	}
	if found.Theme.PrimaryColor == "" {
		t.Error("theme should round-trip")
	}

	// Publish and verify servable.
	found.IsPublished = true
	found.IsActive = true
	if err := s.Update(found); err != nil {
		t.Fatalf("Update: %v", err)
	}
	published, err := s.FindBySlug("test-eid-campaign")
	if err != nil {
		t.Fatalf("FindBySlug after publish: %v", err)
	}
	if !published.Servable() {
		t.Error("published active page must be servable")
	}
}
