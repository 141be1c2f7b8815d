package checkout

import "testing"

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"01712345678", true},
		{"01312345678", true},
		{"01912345678", true},
		{"8801712345678", true},
		{"+8801712345678", true},
		{"+880 1712 345 678", true}, // spaces stripped
		{"01212345678", false},      // 012 is not an operator prefix
		{"0171234567", false},       // too short
		{"017123456789", false},     // too long
		{"+919812345678", false},    // wrong country
		{"", false},
		{"hello", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := ValidPhone(tt.phone); got != tt.want {
				t.Errorf("ValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestCartShipping(t *testing.T) {
	p := Pricing{FreeShippingThreshold: 2000, FlatShippingFee: 100}

	tests := []struct {
		subtotal int
		want     int
	}{
		{1800, 100},
		{1999, 100},
		{2000, 0},
		{2500, 0},
	}
	for _, tt := range tests {
		if got := p.CartShipping(tt.subtotal); got != tt.want {
			t.Errorf("CartShipping(%d) = %d, want %d", tt.subtotal, got, tt.want)
		}
	}
}
