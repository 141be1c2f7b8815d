// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ColumnLayout names a row's column split. The layout implies the column
// count; NewRow enforces the match at creation time.
type ColumnLayout string

const (
	LayoutFull          ColumnLayout = "100"
	LayoutHalves        ColumnLayout = "50-50"
	LayoutThirds        ColumnLayout = "33-33-33"
	LayoutQuarters      ColumnLayout = "25-25-25-25"
	LayoutTwoThirdsLeft ColumnLayout = "66-33"
	LayoutTwoThirdsRight ColumnLayout = "33-66"
	LayoutCenterWide    ColumnLayout = "25-50-25"
	LayoutQuarterLeft   ColumnLayout = "25-75"
	LayoutQuarterRight  ColumnLayout = "75-25"
)

// columnWidths maps each layout to its CSS column widths.
var columnWidths = map[ColumnLayout][]string{
	LayoutFull:           {"100%"},
	LayoutHalves:         {"50%", "50%"},
	LayoutThirds:         {"33.333%", "33.333%", "33.333%"},
	LayoutQuarters:       {"25%", "25%", "25%", "25%"},
	LayoutTwoThirdsLeft:  {"66.666%", "33.333%"},
	LayoutTwoThirdsRight: {"33.333%", "66.666%"},
	LayoutCenterWide:     {"25%", "50%", "25%"},
	LayoutQuarterLeft:    {"25%", "75%"},
	LayoutQuarterRight:   {"75%", "25%"},
}

// Widths returns the CSS widths of the layout's columns, or nil for an
// unknown layout.
func (l ColumnLayout) Widths() []string {
	return columnWidths[l]
}

// ColumnCount returns how many columns the layout implies.
func (l ColumnLayout) ColumnCount() int {
	return len(columnWidths[l])
}

// Widget is a single element placed inside a column. Widget settings stay
// schemaless — the row builder has far more widget kinds than the legacy
// sections and they are edited as free-form key/value forms.
type Widget struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`
	Settings map[string]interface{} `json:"settings"`
}

// ColumnSettings styles a single column.
type ColumnSettings struct {
	VerticalAlign   string `json:"verticalAlign"`
	Padding         string `json:"padding"`
	BackgroundColor string `json:"backgroundColor"`
}

// Column holds an ordered list of widgets.
type Column struct {
	ID       string         `json:"id"`
	Widgets  []Widget       `json:"widgets"`
	Settings ColumnSettings `json:"settings"`
}

// RowSettings styles a whole row.
type RowSettings struct {
	BackgroundColor   string `json:"backgroundColor"`
	BackgroundImage   string `json:"backgroundImage"`
	BackgroundOverlay string `json:"backgroundOverlay"`
	Padding           string `json:"padding"`
	Margin            string `json:"margin"`
	MinHeight         string `json:"minHeight"`
	MaxWidth          string `json:"maxWidth"` // "full" or "boxed"
	VerticalAlign     string `json:"verticalAlign"`
	Gap               string `json:"gap"`
}

// Row is a horizontal band of columns in the newer builder variant.
type Row struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"` // always "row"
	Layout   ColumnLayout `json:"layout"`
	Columns  []Column     `json:"columns"`
	Settings RowSettings  `json:"settings"`
}

// NewRow creates a row with the column count its layout implies, each
// column carrying default settings.
func NewRow(layout ColumnLayout) (Row, error) {
	n := layout.ColumnCount()
	if n == 0 {
		return Row{}, fmt.Errorf("unknown column layout %q", layout)
	}

	cols := make([]Column, n)
	for i := range cols {
		cols[i] = Column{
			ID: uuid.NewString(),
			Settings: ColumnSettings{
				VerticalAlign:   "top",
				Padding:         "16px",
				BackgroundColor: "transparent",
			},
		}
	}

	return Row{
		ID:      uuid.NewString(),
		Type:    "row",
		Layout:  layout,
		Columns: cols,
		Settings: RowSettings{
			BackgroundColor: "transparent",
			Padding:         "24px 16px",
			Margin:          "0",
			MaxWidth:        "boxed",
			VerticalAlign:   "top",
			Gap:             "16px",
		},
	}, nil
}

// Valid reports whether the row's column count matches its layout. The
// invariant is only enforced at creation; stored rows are checked again
// before rendering so a hand-edited payload degrades instead of panicking.
func (r *Row) Valid() bool {
	return r.Layout.ColumnCount() == len(r.Columns)
}

// ParseRows decodes a stored rows payload. A null or empty payload yields
// an empty slice.
func ParseRows(data []byte) ([]Row, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	return rows, nil
}
