// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package builder owns the landing-page builder schema: a tagged union of
// page sections, the newer row/column/widget layout model, and the theme
// token record. Section settings are shaped by the section's type tag; the
// JSON codec dispatches on the tag so stored pages round-trip losslessly,
// including section types this build does not know about.
package builder

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// SectionType discriminates the section union. Adding a type means adding
// a settings struct, a default template in sectionDefaults, and a renderer
// fragment — the registry in this package keeps the first two in lockstep
// and the renderer falls back to rendering nothing for anything missing.
type SectionType string

const (
	SectionHeroProduct   SectionType = "hero-product"
	SectionImageGallery  SectionType = "image-gallery"
	SectionFeatureBadges SectionType = "feature-badges"
	SectionTextBlock     SectionType = "text-block"
	SectionProductInfo   SectionType = "product-info"
	SectionCheckoutForm  SectionType = "checkout-form"
	SectionCTABanner     SectionType = "cta-banner"
	SectionTestimonials  SectionType = "testimonials"
	SectionFAQ           SectionType = "faq"
	SectionImageText     SectionType = "image-text"
	SectionVideo         SectionType = "video"
	SectionCountdown     SectionType = "countdown"
	SectionDivider       SectionType = "divider"
	SectionSpacer        SectionType = "spacer"
)

// Settings is implemented by every per-type settings struct.
type Settings interface {
	sectionSettings()
}

// Badge is a short highlight used by hero and feature-badge sections.
type Badge struct {
	Text    string `json:"text"`
	Subtext string `json:"subtext"`
}

// FormField describes one input of the embedded checkout form.
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Type     string `json:"type"` // "text", "tel", "textarea"
}

// Testimonial is a customer quote inside a testimonials section.
type Testimonial struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Avatar  string `json:"avatar"`
	Rating  int    `json:"rating"`
}

// FAQItem is a question/answer pair inside an FAQ section.
type FAQItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// HeroProductSettings configures the lead product presentation.
type HeroProductSettings struct {
	Images          []string `json:"images"`
	Title           string   `json:"title"`
	Subtitle        string   `json:"subtitle"`
	Price           string   `json:"price"`
	OriginalPrice   string   `json:"originalPrice"`
	ButtonText      string   `json:"buttonText"`
	ButtonLink      string   `json:"buttonLink"`
	Badges          []Badge  `json:"badges"`
	BackgroundColor string   `json:"backgroundColor"`
	TextColor       string   `json:"textColor"`
	Layout          string   `json:"layout"` // "left-image" or "right-image"
}

// ImageGallerySettings configures a grid of images.
type ImageGallerySettings struct {
	Images      []string `json:"images"`
	Columns     int      `json:"columns"`
	Gap         string   `json:"gap"`
	AspectRatio string   `json:"aspectRatio"`
}

// FeatureBadgesSettings configures a row of highlight badges.
type FeatureBadgesSettings struct {
	Title           string  `json:"title"`
	Badges          []Badge `json:"badges"`
	Columns         int     `json:"columns"`
	BackgroundColor string  `json:"backgroundColor"`
	TextColor       string  `json:"textColor"`
}

// TextBlockSettings configures a free-text block.
type TextBlockSettings struct {
	Content         string `json:"content"`
	Alignment       string `json:"alignment"`
	FontSize        string `json:"fontSize"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	Padding         string `json:"padding"`
}

// ProductInfoSettings pulls a live catalog product into the page.
type ProductInfoSettings struct {
	ProductID       string `json:"productId"`
	ShowPrice       bool   `json:"showPrice"`
	ShowDescription bool   `json:"showDescription"`
	ShowImages      bool   `json:"showImages"`
	Layout          string `json:"layout"`
}

// CheckoutFormSettings configures the embedded order form. Submissions go
// through the same price-authoritative order endpoint as the cart flow,
// tagged with order_source "landing-page:<slug>".
type CheckoutFormSettings struct {
	Title           string      `json:"title"`
	ButtonText      string      `json:"buttonText"`
	ProductID       string      `json:"productId"`
	Fields          []FormField `json:"fields"`
	BackgroundColor string      `json:"backgroundColor"`
	AccentColor     string      `json:"accentColor"`
}

// CTABannerSettings configures a call-to-action strip.
type CTABannerSettings struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	ButtonText      string `json:"buttonText"`
	ButtonLink      string `json:"buttonLink"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
}

// TestimonialsSettings configures a customer-review grid.
type TestimonialsSettings struct {
	Title   string        `json:"title"`
	Items   []Testimonial `json:"items"`
	Layout  string        `json:"layout"`
	Columns int           `json:"columns"`
}

// FAQSettings configures a question/answer accordion.
type FAQSettings struct {
	Title           string    `json:"title"`
	Items           []FAQItem `json:"items"`
	BackgroundColor string    `json:"backgroundColor"`
}

// ImageTextSettings configures a side-by-side image and copy block.
type ImageTextSettings struct {
	Image           string `json:"image"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ButtonText      string `json:"buttonText"`
	ButtonLink      string `json:"buttonLink"`
	ImagePosition   string `json:"imagePosition"` // "left" or "right"
	BackgroundColor string `json:"backgroundColor"`
}

// VideoSettings configures an embedded video.
type VideoSettings struct {
	VideoURL string `json:"videoUrl"`
	Autoplay bool   `json:"autoplay"`
	Controls bool   `json:"controls"`
	Loop     bool   `json:"loop"`
}

// CountdownSettings configures a deadline timer. EndDate is RFC 3339.
type CountdownSettings struct {
	Title           string `json:"title"`
	EndDate         string `json:"endDate"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
}

// DividerSettings configures a horizontal rule.
type DividerSettings struct {
	Style     string `json:"style"`
	Color     string `json:"color"`
	Thickness string `json:"thickness"`
	Width     string `json:"width"`
}

// SpacerSettings configures vertical whitespace.
type SpacerSettings struct {
	Height string `json:"height"`
}

func (*HeroProductSettings) sectionSettings()   {}
func (*ImageGallerySettings) sectionSettings()  {}
func (*FeatureBadgesSettings) sectionSettings() {}
func (*TextBlockSettings) sectionSettings()     {}
func (*ProductInfoSettings) sectionSettings()   {}
func (*CheckoutFormSettings) sectionSettings()  {}
func (*CTABannerSettings) sectionSettings()     {}
func (*TestimonialsSettings) sectionSettings()  {}
func (*FAQSettings) sectionSettings()           {}
func (*ImageTextSettings) sectionSettings()     {}
func (*VideoSettings) sectionSettings()         {}
func (*CountdownSettings) sectionSettings()     {}
func (*DividerSettings) sectionSettings()       {}
func (*SpacerSettings) sectionSettings()        {}

// Section is one block of a landing page. Settings holds the concrete
// per-type struct; for types this build does not recognise, Settings is
// nil and Raw preserves the stored payload so saves don't destroy data.
type Section struct {
	ID       string          `json:"id"`
	Type     SectionType     `json:"type"`
	Order    int             `json:"order"`
	Settings Settings        `json:"-"`
	Raw      json.RawMessage `json:"-"`
}

// sectionEnvelope is the wire shape of a Section.
type sectionEnvelope struct {
	ID       string          `json:"id"`
	Type     SectionType     `json:"type"`
	Order    int             `json:"order"`
	Settings json.RawMessage `json:"settings"`
}

// emptySettings returns a zero settings value for the given type, or nil
// for unknown types.
func emptySettings(t SectionType) Settings {
	switch t {
	case SectionHeroProduct:
		return &HeroProductSettings{}
	case SectionImageGallery:
		return &ImageGallerySettings{}
	case SectionFeatureBadges:
		return &FeatureBadgesSettings{}
	case SectionTextBlock:
		return &TextBlockSettings{}
	case SectionProductInfo:
		return &ProductInfoSettings{}
	case SectionCheckoutForm:
		return &CheckoutFormSettings{}
	case SectionCTABanner:
		return &CTABannerSettings{}
	case SectionTestimonials:
		return &TestimonialsSettings{}
	case SectionFAQ:
		return &FAQSettings{}
	case SectionImageText:
		return &ImageTextSettings{}
	case SectionVideo:
		return &VideoSettings{}
	case SectionCountdown:
		return &CountdownSettings{}
	case SectionDivider:
		return &DividerSettings{}
	case SectionSpacer:
		return &SpacerSettings{}
	}
	return nil
}

// UnmarshalJSON decodes the envelope and dispatches the settings payload
// on the type tag. Unknown types keep their raw settings and decode to a
// nil Settings — the renderer skips them.
func (s *Section) UnmarshalJSON(data []byte) error {
	var env sectionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode section envelope: %w", err)
	}

	s.ID = env.ID
	s.Type = env.Type
	s.Order = env.Order
	s.Raw = env.Settings

	settings := emptySettings(env.Type)
	if settings == nil {
		s.Settings = nil
		return nil
	}
	if len(env.Settings) > 0 {
		if err := json.Unmarshal(env.Settings, settings); err != nil {
			return fmt.Errorf("decode %s settings: %w", env.Type, err)
		}
	}
	s.Settings = settings
	return nil
}

// MarshalJSON re-encodes the section, preserving raw settings for unknown
// types.
func (s Section) MarshalJSON() ([]byte, error) {
	env := sectionEnvelope{ID: s.ID, Type: s.Type, Order: s.Order}

	if s.Settings != nil {
		raw, err := json.Marshal(s.Settings)
		if err != nil {
			return nil, fmt.Errorf("encode %s settings: %w", s.Type, err)
		}
		env.Settings = raw
	} else if len(s.Raw) > 0 {
		env.Settings = s.Raw
	} else {
		env.Settings = json.RawMessage(`{}`)
	}

	return json.Marshal(env)
}

// NewSection creates a section of the given type with its default
// template settings and a fresh ID. Order is assigned when the section is
// inserted into a SectionList. Returns an error for unknown types.
func NewSection(t SectionType) (Section, error) {
	defaults, ok := sectionDefaults[t]
	if !ok {
		return Section{}, fmt.Errorf("unknown section type %q", t)
	}
	return Section{
		ID:       uuid.NewString(),
		Type:     t,
		Settings: defaults(),
	}, nil
}

// sectionDefaults maps each type to a factory for its template settings,
// matching what the editor inserts for a brand-new section.
var sectionDefaults = map[SectionType]func() Settings{
	SectionHeroProduct: func() Settings {
		return &HeroProductSettings{
			Title:      "Product Title",
			Subtitle:   "Product description goes here",
			Price:      "1350",
			ButtonText: "এখনই কিনুন",
			ButtonLink: "#checkout",
			Badges: []Badge{
				{Text: "100%", Subtext: "Quality Guarantee"},
				{Text: "Size 36-46", Subtext: "Size Options"},
				{Text: "All Bangladesh", Subtext: "Delivery Service"},
			},
			BackgroundColor: "#ffffff",
			TextColor:       "#1f2937",
			Layout:          "left-image",
		}
	},
	SectionImageGallery: func() Settings {
		return &ImageGallerySettings{Columns: 3, Gap: "16px", AspectRatio: "square"}
	},
	SectionFeatureBadges: func() Settings {
		return &FeatureBadgesSettings{
			Title:           "Features",
			Columns:         3,
			BackgroundColor: "#1f2937",
			TextColor:       "#ffffff",
		}
	},
	SectionTextBlock: func() Settings {
		return &TextBlockSettings{
			Content:         "Enter your text here...",
			Alignment:       "center",
			FontSize:        "16px",
			BackgroundColor: "transparent",
			TextColor:       "#1f2937",
			Padding:         "32px",
		}
	},
	SectionProductInfo: func() Settings {
		return &ProductInfoSettings{
			ShowPrice:       true,
			ShowDescription: true,
			ShowImages:      true,
			Layout:          "horizontal",
		}
	},
	SectionCheckoutForm: func() Settings {
		return &CheckoutFormSettings{
			Title:      "অর্ডার করতে নিচের ফর্মটি পূরণ করুন",
			ButtonText: "অর্ডার কনফার্ম করুন",
			Fields: []FormField{
				{Name: "name", Label: "আপনার নাম", Required: true, Type: "text"},
				{Name: "phone", Label: "মোবাইল নম্বর", Required: true, Type: "tel"},
				{Name: "address", Label: "সম্পূর্ণ ঠিকানা", Required: true, Type: "textarea"},
			},
			BackgroundColor: "#f9fafb",
			AccentColor:     "#ef4444",
		}
	},
	SectionCTABanner: func() Settings {
		return &CTABannerSettings{
			Title:           "Ready to Order?",
			Subtitle:        "Get yours today!",
			ButtonText:      "Order Now",
			ButtonLink:      "#checkout",
			BackgroundColor: "#000000",
			TextColor:       "#ffffff",
		}
	},
	SectionTestimonials: func() Settings {
		return &TestimonialsSettings{Title: "Customer Reviews", Layout: "grid", Columns: 3}
	},
	SectionFAQ: func() Settings {
		return &FAQSettings{Title: "Frequently Asked Questions", BackgroundColor: "#ffffff"}
	},
	SectionImageText: func() Settings {
		return &ImageTextSettings{
			Title:           "Title",
			Description:     "Description",
			ButtonText:      "Learn More",
			ButtonLink:      "#",
			ImagePosition:   "left",
			BackgroundColor: "#ffffff",
		}
	},
	SectionVideo: func() Settings {
		return &VideoSettings{Controls: true}
	},
	SectionCountdown: func() Settings {
		return &CountdownSettings{
			Title:           "Offer Ends In",
			BackgroundColor: "#ef4444",
			TextColor:       "#ffffff",
		}
	},
	SectionDivider: func() Settings {
		return &DividerSettings{Style: "solid", Color: "#e5e7eb", Thickness: "1px", Width: "100%"}
	},
	SectionSpacer: func() Settings {
		return &SpacerSettings{Height: "48px"}
	},
}

// KnownSectionTypes returns the section types this build can edit and
// render, in display order.
func KnownSectionTypes() []SectionType {
	return []SectionType{
		SectionHeroProduct, SectionImageGallery, SectionFeatureBadges,
		SectionTextBlock, SectionProductInfo, SectionCheckoutForm,
		SectionCTABanner, SectionTestimonials, SectionFAQ,
		SectionImageText, SectionVideo, SectionCountdown,
		SectionDivider, SectionSpacer,
	}
}
