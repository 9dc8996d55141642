package main

import "testing"

func TestParseScale(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 1},
		{"2", 2},
		{"0.5", 0.5},
		{"8", 8},
		{"100", maxScale},
		{"1e9", maxScale},
		{"Inf", maxScale},
	}
	for _, tt := range tests {
		got, err := parseScale(tt.in)
		if err != nil {
			t.Errorf("parseScale(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseScale(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"0", "-1", "NaN", "big"} {
		if _, err := parseScale(in); err == nil {
			t.Errorf("parseScale(%q): expected error", in)
		}
	}
}
