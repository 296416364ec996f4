package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "player overlaps nearby obstacle",
			a:        NewRect(100, 300, 64, 64),
			b:        NewRect(140, 280, 40, 40),
			expected: true,
		},
		{
			name:     "player clear of distant obstacle",
			a:        NewRect(100, 300, 64, 64),
			b:        NewRect(300, 280, 40, 40),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "sub-unit overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.5, 9.5, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() is not symmetric: got %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(10, 20, 72, 72)

	got := r.Inset(12, 8)
	want := NewRect(22, 28, 48, 56)
	if got != want {
		t.Errorf("Inset(12, 8) = %+v, expected %+v", got, want)
	}

	if r.Inset(0, 0) != r {
		t.Error("Inset(0, 0) should return the same rect")
	}

	collapsed := r.Inset(50, 50)
	if collapsed.W != 0 || collapsed.H != 0 {
		t.Errorf("over-inset rect should collapse to zero size, got %+v", collapsed)
	}
	if collapsed.X != 46 || collapsed.Y != 56 {
		t.Errorf("collapsed rect should sit at the center, got (%v, %v)", collapsed.X, collapsed.Y)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 30)

	if r.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", r.Right())
	}
	if r.Bottom() != 40 {
		t.Errorf("Bottom() = %v, expected 40", r.Bottom())
	}
}

