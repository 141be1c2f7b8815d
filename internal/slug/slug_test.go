package slug

import (
	"context"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple two words", "Hello World", "hello-world"},
		{"product name with year", "Premium Panjabi 2026", "premium-panjabi-2026"},
		{"already lowercase", "already lowercase", "already-lowercase"},
		{"punctuation marks", "Eid Collection, Vol. 2!", "eid-collection-vol-2"},
		{"ampersand", "Shirts & Pants", "shirts-pants"},
		{"parentheses", "Kabli Set (Premium)", "kabli-set-premium"},
		{"multiple consecutive spaces", "hello    world", "hello-world"},
		{"leading and trailing spaces", "  hello world  ", "hello-world"},
		{"leading hyphens", "---hello world", "hello-world"},
		{"multiple hyphens between words", "hello---world", "hello-world"},
		{"single hyphen preserved", "well-known fact", "well-known-fact"},
		{"empty string", "", ""},
		{"only special characters", "!@#$%^&*()", ""},
		{"only hyphens", "-----", ""},
		{"all numbers", "123456", "123456"},
		{"date-like string", "2026-02-25", "2026-02-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	slugs := []string{"hello-world", "eid-collection-2026", "a", "123"}

	for _, s := range slugs {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{
		"premium-panjabi":   true,
		"premium-panjabi-2": true,
	}
	exists := func(_ context.Context, s string) (bool, error) {
		return taken[s], nil
	}

	got, err := Unique(context.Background(), "Premium Panjabi", exists)
	if err != nil {
		t.Fatalf("Unique: %v", err)
	}
	if got != "premium-panjabi-3" {
		t.Errorf("Unique = %q, want %q", got, "premium-panjabi-3")
	}
}

func TestUnique_Free(t *testing.T) {
	exists := func(_ context.Context, s string) (bool, error) { return false, nil }

	got, err := Unique(context.Background(), "Kabli Set", exists)
	if err != nil {
		t.Fatalf("Unique: %v", err)
	}
	if got != "kabli-set" {
		t.Errorf("Unique = %q, want %q", got, "kabli-set")
	}
}

func TestUnique_EmptyInput(t *testing.T) {
	exists := func(_ context.Context, s string) (bool, error) { return false, nil }

	got, err := Unique(context.Background(), "!!!", exists)
	if err != nil {
		t.Fatalf("Unique: %v", err)
	}
	if got != "untitled" {
		t.Errorf("Unique = %q, want %q", got, "untitled")
	}
}
