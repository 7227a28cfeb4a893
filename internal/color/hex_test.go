package color

import (
	"errors"
	"testing"
)

func TestIsHexCode(t *testing.T) {
	tests := []struct {
		input string
		any   bool
		six   bool
		eight bool
	}{
		{"#123456", true, true, false},
		{"#ABCDEF", true, true, false},
		{"#abcdef", true, true, false},
		{"#12345678", true, false, true},
		{"#aBcDeF01", true, false, true},
		{"123456", false, false, false},
		{"#12345", false, false, false},
		{"#1234567", false, false, false},
		{"#123456789", false, false, false},
		{"#12345g", false, false, false},
		{"#fff", false, false, false},
		{"# 123456", false, false, false},
		{"#123456\n", false, false, false},
		{"", false, false, false},
		{"#", false, false, false},
		{"red", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsHexCode(tt.input); got != tt.any {
				t.Errorf("IsHexCode(%q) = %v, want %v", tt.input, got, tt.any)
			}
			if got := IsHexCode6(tt.input); got != tt.six {
				t.Errorf("IsHexCode6(%q) = %v, want %v", tt.input, got, tt.six)
			}
			if got := IsHexCode8(tt.input); got != tt.eight {
				t.Errorf("IsHexCode8(%q) = %v, want %v", tt.input, got, tt.eight)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", HexCode6, false},
		{"hexCode6", HexCode6, false},
		{"hexCode8", HexCode8, false},
		{"hexcode8", "", true},
		{"rgb", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("ParseFormat(%q) error = %v, want ErrInvalidFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
