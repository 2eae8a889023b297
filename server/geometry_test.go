package server

import "testing"

func TestPointOnSegment(t *testing.T) {
	for _, tc := range []struct {
		name string
		p    Vec2
		a, b Vec2
		want bool
	}{
		{"horizontal middle", Vec2{5, 3}, Vec2{1, 3}, Vec2{9, 3}, true},
		{"horizontal reversed", Vec2{5, 3}, Vec2{9, 3}, Vec2{1, 3}, true},
		{"horizontal endpoint", Vec2{9, 3}, Vec2{1, 3}, Vec2{9, 3}, true},
		{"horizontal past end", Vec2{10, 3}, Vec2{1, 3}, Vec2{9, 3}, false},
		{"horizontal off row", Vec2{5, 4}, Vec2{1, 3}, Vec2{9, 3}, false},
		{"vertical middle", Vec2{2, 6}, Vec2{2, 8}, Vec2{2, 1}, true},
		{"vertical off column", Vec2{3, 6}, Vec2{2, 8}, Vec2{2, 1}, false},
		{"degenerate hit", Vec2{4, 4}, Vec2{4, 4}, Vec2{4, 4}, true},
		{"degenerate miss", Vec2{4, 5}, Vec2{4, 4}, Vec2{4, 4}, false},
		{"diagonal endpoint only", Vec2{2, 2}, Vec2{1, 1}, Vec2{3, 3}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := PointOnSegment(tc.p, tc.a, tc.b); got != tc.want {
				t.Fatalf("PointOnSegment(%v, %v, %v) = %v, want %v", tc.p, tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestRectContainsAndOverlaps(t *testing.T) {
	r := Rect{Min: Vec2{0, 0}, Max: Vec2{4, 4}}
	if !r.Contains(Vec2{4, 4}) || !r.Contains(Vec2{0, 0}) {
		t.Fatalf("rect must include its corners")
	}
	if r.Contains(Vec2{5, 4}) {
		t.Fatalf("rect contains point outside")
	}

	pt := PointRect(Vec2{4, 2})
	if !r.Overlaps(pt) || !pt.Overlaps(r) {
		t.Fatalf("point box on the edge must overlap")
	}
	if r.Overlaps(PointRect(Vec2{5, 5})) {
		t.Fatalf("unexpected overlap with outside point")
	}
}

func TestRectClip(t *testing.T) {
	got, ok := Rect{Min: Vec2{-3, 5}, Max: Vec2{12, 40}}.Clip(10, 20)
	if !ok {
		t.Fatalf("expected intersection")
	}
	want := Rect{Min: Vec2{0, 5}, Max: Vec2{9, 19}}
	if got != want {
		t.Fatalf("clip = %+v, want %+v", got, want)
	}
	if _, ok := (Rect{Min: Vec2{20, 0}, Max: Vec2{25, 3}}).Clip(10, 10); ok {
		t.Fatalf("expected no intersection")
	}
}
