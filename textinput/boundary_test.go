package textinput

import (
	"testing"
	"unicode/utf8"
)

// TestPreviousBoundary tests stepping backwards over single- and multi-byte
// code points.
func TestPreviousBoundary(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		offset int
		want   int
	}{
		{"ascii middle", "Hello", 3, 2},
		{"ascii end", "Hello", 5, 4},
		{"at start", "Hello", 0, 0},
		{"negative", "Hello", -2, 0},
		{"past end", "Hi", 10, 1},
		{"cjk from end", "日本", 6, 3},
		{"cjk from middle boundary", "日本", 3, 0},
		{"cjk interior byte", "日本", 4, 3},
		{"empty", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreviousBoundary(tt.s, tt.offset); got != tt.want {
				t.Errorf("PreviousBoundary(%q, %d) = %d, want %d", tt.s, tt.offset, got, tt.want)
			}
		})
	}
}

// TestNextBoundary tests stepping forwards over single- and multi-byte
// code points.
func TestNextBoundary(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		offset int
		want   int
	}{
		{"ascii middle", "Hello", 2, 3},
		{"at end", "Hello", 5, 5},
		{"past end", "Hi", 10, 2},
		{"negative", "Hi", -1, 1},
		{"cjk from start", "日本", 0, 3},
		{"cjk interior byte", "日本", 1, 3},
		{"cjk last", "日本", 3, 6},
		{"empty", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextBoundary(tt.s, tt.offset); got != tt.want {
				t.Errorf("NextBoundary(%q, %d) = %d, want %d", tt.s, tt.offset, got, tt.want)
			}
		})
	}
}

// TestClampToBoundary tests that interior multi-byte positions snap
// backwards and valid boundaries pass through unchanged.
func TestClampToBoundary(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		offset int
		want   int
	}{
		{"boundary unchanged", "Hello", 3, 3},
		{"zero", "Hello", 0, 0},
		{"len", "Hello", 5, 5},
		{"negative", "Hello", -3, 0},
		{"past end", "Hello", 99, 5},
		{"cjk interior 1", "日本", 1, 0},
		{"cjk interior 2", "日本", 2, 0},
		{"cjk interior 4", "日本", 4, 3},
		{"cjk boundary", "日本", 3, 3},
		{"empty past end", "", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampToBoundary(tt.s, tt.offset); got != tt.want {
				t.Errorf("ClampToBoundary(%q, %d) = %d, want %d", tt.s, tt.offset, got, tt.want)
			}
		})
	}
}

// TestClampToBoundary_Idempotent verifies clamping twice equals clamping
// once for every offset of a mixed-width string.
func TestClampToBoundary_Idempotent(t *testing.T) {
	s := "a日b本c"
	for off := -1; off <= len(s)+1; off++ {
		once := ClampToBoundary(s, off)
		twice := ClampToBoundary(s, once)
		if once != twice {
			t.Errorf("ClampToBoundary(%q, %d): once=%d twice=%d", s, off, once, twice)
		}
		if once < 0 || once > len(s) {
			t.Errorf("ClampToBoundary(%q, %d) = %d out of range", s, off, once)
		}
		if once < len(s) && !utf8.RuneStart(s[once]) {
			t.Errorf("ClampToBoundary(%q, %d) = %d is not a boundary", s, off, once)
		}
	}
}
