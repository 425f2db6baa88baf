package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := R(10, 20, 30, 40)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"top-left corner", Point{10, 20}, true},
		{"inside", Point{25, 40}, true},
		{"right edge exclusive", Point{40, 30}, false},
		{"bottom edge exclusive", Point{15, 60}, false},
		{"left of rect", Point{9, 30}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 5, Y: 7}
	q := Point{X: 2, Y: 10}
	if got := p.Sub(q); got != (Point{X: 3, Y: -3}) {
		t.Fatalf("Sub = %v", got)
	}
	if got := p.Sub(q).Add(q); got != p {
		t.Fatalf("Add(Sub) = %v, want %v", got, p)
	}
}

func TestRectEmpty(t *testing.T) {
	if !R(0, 0, 0, 5).Empty() {
		t.Fatalf("zero width should be empty")
	}
	if R(0, 0, 1, 1).Empty() {
		t.Fatalf("1x1 should not be empty")
	}
}
