package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "touching edges",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "fractional overlap",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(9.5, 9.5, 10, 10),
			expected: true,
		},
		{
			name:     "contained box",
			a:        NewBox(0, 0, 20, 20),
			b:        NewBox(5, 5, 5, 5),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() is not symmetric for %s", tc.name)
			}
		})
	}
}

func TestBoxOverlapsX(t *testing.T) {
	avatar := NewBox(50, 0, 34, 24)

	if !avatar.OverlapsX(NewBox(80, 300, 60, 10)) {
		t.Error("expected horizontal overlap when obstacle starts inside avatar span")
	}
	if avatar.OverlapsX(NewBox(84, 0, 60, 10)) {
		t.Error("obstacle starting at avatar right edge should not overlap")
	}
	if avatar.OverlapsX(NewBox(-10, 0, 60, 10)) {
		t.Error("obstacle ending at avatar left edge should not overlap")
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(1.5, 2, 3, 4.5)
	if b.Left() != 1.5 || b.Right() != 4.5 {
		t.Errorf("horizontal edges = (%v, %v), expected (1.5, 4.5)", b.Left(), b.Right())
	}
	if b.Top() != 2 || b.Bottom() != 6.5 {
		t.Errorf("vertical edges = (%v, %v), expected (2, 6.5)", b.Top(), b.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected float64
	}{
		{250, 0, 576, 250},
		{-3.2, 0, 576, 0},
		{600.6, 0, 576, 576},
		{576, 0, 576, 576},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}
