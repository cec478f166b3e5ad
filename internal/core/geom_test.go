package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
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
			name:     "fractional overlap",
			a:        NewRect(0, 0, 10.5, 10),
			b:        NewRect(10.25, 0, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		p        Vec
		expected bool
	}{
		{"inside", V(15, 15), true},
		{"top-left corner", V(10, 10), true},
		{"right edge (exclusive)", V(30, 15), false},
		{"bottom edge (exclusive)", V(15, 25), false},
		{"just inside bottom", V(15, 24.999), true},
		{"outside left", V(5, 15), false},
		{"outside top", V(15, 5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.p)
			if result != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, result, tc.expected)
			}
		})
	}
}

func TestRectCorners(t *testing.T) {
	r := NewRect(5, 10, 20, 16)

	if r.MaxX() != 25 {
		t.Errorf("MaxX() = %v, expected 25", r.MaxX())
	}
	if r.MaxY() != 26 {
		t.Errorf("MaxY() = %v, expected 26", r.MaxY())
	}
	if c := r.Center(); c != V(15, 18) {
		t.Errorf("Center() = %v, expected (15, 18)", c)
	}
	if ul := r.UpperLeft(); ul != V(5, 10) {
		t.Errorf("UpperLeft() = %v, expected (5, 10)", ul)
	}
	if ur := r.UpperRight(); ur != V(25, 10) {
		t.Errorf("UpperRight() = %v, expected (25, 10)", ur)
	}
	if ll := r.LowerLeft(); ll != V(5, 26) {
		t.Errorf("LowerLeft() = %v, expected (5, 26)", ll)
	}
	if lr := r.LowerRight(); lr != V(25, 26) {
		t.Errorf("LowerRight() = %v, expected (25, 26)", lr)
	}
}

func TestRectInsetOffset(t *testing.T) {
	r := NewRect(0, 0, 100, 50)

	in := r.Inset(10, 5)
	if in != NewRect(10, 5, 80, 40) {
		t.Errorf("Inset(10, 5) = %+v, expected {10 5 80 40}", in)
	}
	if in.Center() != r.Center() {
		t.Errorf("Inset() moved center to %v", in.Center())
	}

	collapsed := r.Inset(60, 0)
	if collapsed.W != 0 || collapsed.X != 50 {
		t.Errorf("Inset(60, 0) = %+v, expected zero width at x=50", collapsed)
	}

	moved := r.Offset(3, -2)
	if moved != NewRect(3, -2, 100, 50) {
		t.Errorf("Offset(3, -2) = %+v", moved)
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(V(50, 40), Size{W: 20, H: 10})
	if r != NewRect(40, 35, 20, 10) {
		t.Errorf("RectAround() = %+v, expected {40 35 20 10}", r)
	}
	if got := r.WithCenter(V(0, 0)); got != NewRect(-10, -5, 20, 10) {
		t.Errorf("WithCenter() = %+v", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
