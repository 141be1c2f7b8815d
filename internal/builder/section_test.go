package builder

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewSectionDefaults(t *testing.T) {
	for _, typ := range KnownSectionTypes() {
		s, err := NewSection(typ)
		if err != nil {
			t.Fatalf("NewSection(%s): %v", typ, err)
		}
		if s.ID == "" {
			t.Errorf("NewSection(%s) produced empty ID", typ)
		}
		if s.Settings == nil {
			t.Errorf("NewSection(%s) produced nil settings", typ)
		}
	}
}

func TestNewSectionUnknownType(t *testing.T) {
	if _, err := NewSection("carousel-3d"); err == nil {
		t.Fatal("NewSection with unknown type should fail")
	}
}

func TestSectionJSONDispatch(t *testing.T) {
	raw := `{
		"id": "abc",
		"type": "countdown",
		"order": 2,
		"settings": {"title": "Hurry", "endDate": "2026-12-01T00:00:00Z", "backgroundColor": "#ef4444", "textColor": "#fff"}
	}`

	var s Section
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cd, ok := s.Settings.(*CountdownSettings)
	if !ok {
		t.Fatalf("settings type = %T, want *CountdownSettings", s.Settings)
	}
	if cd.Title != "Hurry" || cd.EndDate != "2026-12-01T00:00:00Z" {
		t.Errorf("decoded settings = %+v", cd)
	}
	if s.Order != 2 {
		t.Errorf("order = %d, want 2", s.Order)
	}
}

func TestSectionUnknownTypePreserved(t *testing.T) {
	raw := `{"id":"x","type":"hologram","order":0,"settings":{"depth":3}}`

	var s Section
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Settings != nil {
		t.Fatalf("settings for unknown type = %T, want nil", s.Settings)
	}

	// Round-trip must keep the original settings payload byte-compatible.
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"depth":3`) {
		t.Errorf("round-trip lost unknown settings: %s", out)
	}
	if !strings.Contains(string(out), `"type":"hologram"`) {
		t.Errorf("round-trip lost type tag: %s", out)
	}
}

func TestSectionRoundTrip(t *testing.T) {
	s, err := NewSection(SectionHeroProduct)
	if err != nil {
		t.Fatal(err)
	}
	hero := s.Settings.(*HeroProductSettings)
	hero.Title = "Leather Shoe"
	hero.Price = "1450"

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Section
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := back.Settings.(*HeroProductSettings)
	if got.Title != "Leather Shoe" || got.Price != "1450" {
		t.Errorf("round-trip settings = %+v", got)
	}
	if len(got.Badges) != 3 {
		t.Errorf("badges lost in round-trip: %d", len(got.Badges))
	}
}
