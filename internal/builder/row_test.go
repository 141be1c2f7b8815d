package builder

import "testing"

func TestNewRowColumnCounts(t *testing.T) {
	tests := []struct {
		layout ColumnLayout
		cols   int
	}{
		{LayoutFull, 1},
		{LayoutHalves, 2},
		{LayoutThirds, 3},
		{LayoutQuarters, 4},
		{LayoutTwoThirdsLeft, 2},
		{LayoutTwoThirdsRight, 2},
		{LayoutCenterWide, 3},
		{LayoutQuarterLeft, 2},
		{LayoutQuarterRight, 2},
	}

	for _, tt := range tests {
		row, err := NewRow(tt.layout)
		if err != nil {
			t.Fatalf("NewRow(%s): %v", tt.layout, err)
		}
		if len(row.Columns) != tt.cols {
			t.Errorf("NewRow(%s) columns = %d, want %d", tt.layout, len(row.Columns), tt.cols)
		}
		if !row.Valid() {
			t.Errorf("NewRow(%s) row invalid", tt.layout)
		}
		if len(tt.layout.Widths()) != tt.cols {
			t.Errorf("Widths(%s) = %d entries, want %d", tt.layout, len(tt.layout.Widths()), tt.cols)
		}
	}
}

func TestNewRowUnknownLayout(t *testing.T) {
	if _, err := NewRow("20-20-60"); err == nil {
		t.Fatal("NewRow with unknown layout should fail")
	}
}

func TestRowValidDetectsMismatch(t *testing.T) {
	row, err := NewRow(LayoutHalves)
	if err != nil {
		t.Fatal(err)
	}
	row.Columns = row.Columns[:1]
	if row.Valid() {
		t.Error("row with dropped column should be invalid")
	}
}

func TestParseRows(t *testing.T) {
	rows, err := ParseRows([]byte(`[{"id":"r1","type":"row","layout":"50-50","columns":[{"id":"c1","widgets":[],"settings":{}},{"id":"c2","widgets":[],"settings":{}}],"settings":{}}]`))
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	if len(rows) != 1 || !rows[0].Valid() {
		t.Errorf("parsed rows = %+v", rows)
	}

	empty, err := ParseRows([]byte(`null`))
	if err != nil || empty != nil {
		t.Errorf("ParseRows(null) = %v, %v", empty, err)
	}
}
