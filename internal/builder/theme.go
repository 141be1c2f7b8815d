// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

// ThemeSettings is the flat style-token record threaded through every
// renderer branch. It has no relationships; one record per page.
type ThemeSettings struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	AccentColor     string `json:"accentColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	FontFamily      string `json:"fontFamily"`
	BorderRadius    string `json:"borderRadius"`
	ButtonStyle     string `json:"buttonStyle"` // "filled", "outline", "ghost"
}

// DefaultTheme returns the stock theme applied to new landing pages.
func DefaultTheme() ThemeSettings {
	return ThemeSettings{
		PrimaryColor:    "#000000",
		SecondaryColor:  "#f5f5f5",
		AccentColor:     "#ef4444",
		BackgroundColor: "#ffffff",
		TextColor:       "#1f2937",
		FontFamily:      "Inter",
		BorderRadius:    "8px",
		ButtonStyle:     "filled",
	}
}

// orDefault fills empty tokens from the default theme so stored pages
// created before a token existed still render sensibly.
func (t ThemeSettings) OrDefault() ThemeSettings {
	d := DefaultTheme()
	if t.PrimaryColor == "" {
		t.PrimaryColor = d.PrimaryColor
	}
	if t.SecondaryColor == "" {
		t.SecondaryColor = d.SecondaryColor
	}
	if t.AccentColor == "" {
		t.AccentColor = d.AccentColor
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = d.BackgroundColor
	}
	if t.TextColor == "" {
		t.TextColor = d.TextColor
	}
	if t.FontFamily == "" {
		t.FontFamily = d.FontFamily
	}
	if t.BorderRadius == "" {
		t.BorderRadius = d.BorderRadius
	}
	if t.ButtonStyle == "" {
		t.ButtonStyle = d.ButtonStyle
	}
	return t
}
