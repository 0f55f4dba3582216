package stockwatch

import "testing"

func TestPercentString(t *testing.T) {
	tests := []struct {
		p      Percent
		want   string
		want1  string
		signed string
	}{
		{0, "0.00%", "0.0%", "-"},
		{-9.98, "-9.98%", "-10.0%", "-9.98%"},
		{13.23, "13.23%", "13.2%", "+13.23%"},
		{-10, "-10.00%", "-10.0%", "-10.00%"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Percent(%v).String() = %q, want %q", float64(tt.p), got, tt.want)
		}
		if got := tt.p.String1(); got != tt.want1 {
			t.Errorf("Percent(%v).String1() = %q, want %q", float64(tt.p), got, tt.want1)
		}
		if got := tt.p.SignedString(); got != tt.signed {
			t.Errorf("Percent(%v).SignedString() = %q, want %q", float64(tt.p), got, tt.signed)
		}
	}
}

func TestPctChange(t *testing.T) {
	tests := []struct {
		value, base float64
		want        Percent
	}{
		{100, 100, 0},
		{90, 100, -10},
		{4.15, 4.61, -9.98},
		{4.00, 4.61, -13.23},
		{104.5, 100, 4.5},
		// The raw float division of 0.1/0.3 is noisy; decimal keeps it clean.
		{0.4, 0.3, 33.33},
	}
	for _, tt := range tests {
		if got := pctChange(tt.value, tt.base); !got.Equal(tt.want) {
			t.Errorf("pctChange(%v, %v) = %v, want %v", tt.value, tt.base, got, tt.want)
		}
	}
}

func TestRounding(t *testing.T) {
	if got := round2(4.149); got != 4.15 {
		t.Errorf("round2(4.149) = %v, want 4.15", got)
	}
	if got := round2(-10.195); got != -10.2 {
		t.Errorf("round2(-10.195) = %v, want -10.2 (half away from zero)", got)
	}
	if got := round1(5.55); got != 5.6 {
		t.Errorf("round1(5.55) = %v, want 5.6", got)
	}
}
