package boxshade

import (
	"fmt"
	"math"
	"testing"
)

// unitBox returns the 100x100 box used by most classifier tests:
// no margins, 5 wide border, square corners.
func unitBox() Box {
	return Box{Left: 0, Right: 100, Bottom: 0, Top: 100, BorderWidth: 5}
}

func TestClassifyStraightEdges(t *testing.T) {
	b := unitBox()

	tests := []struct {
		name string
		p    Point
		want Region
	}{
		{"center", Pt(50, 50), Background},
		{"left band", Pt(2, 50), BorderLeft},
		{"right band", Pt(98, 50), BorderRight},
		{"bottom band", Pt(50, 2), BorderBottom},
		{"top band", Pt(50, 97), BorderTop},
		{"just inside border", Pt(5.5, 50), Background},
		{"left of box", Pt(-1, 50), Outside},
		{"right of box", Pt(101, 50), Outside},
		{"below box", Pt(50, -0.5), Outside},
		{"above box", Pt(50, 100.5), Outside},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.p, b); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestClassifyWithMargins(t *testing.T) {
	b := unitBox()
	b.SetMargin(10)

	tests := []struct {
		name string
		p    Point
		want Region
	}{
		{"in margin band", Pt(5, 50), Outside},
		{"on border", Pt(12, 50), BorderLeft},
		{"interior", Pt(50, 50), Background},
		{"top margin", Pt(50, 95), Outside},
		{"top border", Pt(50, 87), BorderTop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.p, b); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

// Corners are rounded by max(radius, width) even when the radius is zero,
// so a square-cornered box with a wide border still clips its corner points.
func TestClassifyCornerRounding(t *testing.T) {
	b := unitBox() // radwid = max(0, 5) = 5

	tests := []struct {
		name string
		p    Point
		want Region
	}{
		// (0,0) is sqrt(50) ~ 7.07 away from the corner center (5,5).
		{"bottom-left corner point", Pt(0, 0), Outside},
		{"top-left corner point", Pt(0, 100), Outside},
		{"top-right corner point", Pt(100, 100), Outside},
		{"bottom-right corner point", Pt(100, 0), Outside},
		// Corner centers sit on the arc (r = 0 <= radwid).
		{"bottom-left center", Pt(5, 5), BorderBottom},
		{"top-right center", Pt(95, 95), BorderTop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.p, b); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestClassifyBorderRadius(t *testing.T) {
	b := unitBox()
	b.BorderRadius = 10 // radwid = 10, rad = 5

	tests := []struct {
		name string
		p    Point
		want Region
	}{
		// Distances from the top-left corner center (10, 90):
		// (2,98): r ~ 11.3 > 10 -> outside the arc.
		{"beyond outer arc", Pt(2, 98), Outside},
		// (3,97): r ~ 9.9, within [rad, radwid] -> border; tie to top.
		{"on corner band", Pt(3, 97), BorderTop},
		// (8,92): r ~ 2.8 < 5 -> inside the inner arc.
		{"inside inner arc", Pt(8, 92), Background},
		// From the bottom-left corner center (10, 10): (3,3) looks clipped
		// by eye, but r = sqrt(98) ~ 9.90 < 10 keeps it inside the outer
		// arc; the exact left/bottom distance tie resolves to bottom.
		{"corner point inside outer arc", Pt(3, 3), BorderBottom},
		// (8,8): r = sqrt(8) ~ 2.83 < 5 -> inside the inner arc.
		{"corner point inside inner arc", Pt(8, 8), Background},
		// Straight bands are unaffected by the radius.
		{"left band mid-height", Pt(2, 50), BorderLeft},
		{"center", Pt(50, 50), Background},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.p, b); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

// At exact distance ties the second-named edge wins. These comparisons are a
// fixed contract: changing them changes rendered corners.
func TestClassifyTieBreaks(t *testing.T) {
	t.Run("left-right tie goes right", func(t *testing.T) {
		b := Box{Left: 0, Right: 10, Bottom: 0, Top: 100, BorderWidth: 5}
		if got := Classify(Pt(5, 50), b); got != BorderRight {
			t.Errorf("Classify(5,50) = %v, want BorderRight", got)
		}
	})
	t.Run("bottom-top tie goes top", func(t *testing.T) {
		b := Box{Left: 0, Right: 100, Bottom: 0, Top: 10, BorderWidth: 5}
		if got := Classify(Pt(50, 5), b); got != BorderTop {
			t.Errorf("Classify(50,5) = %v, want BorderTop", got)
		}
	})
	t.Run("corner diagonal tie goes to horizontal edge", func(t *testing.T) {
		b := unitBox()
		// Equidistant from the left and bottom edges inside the corner.
		if got := Classify(Pt(4, 4), b); got != BorderBottom {
			t.Errorf("Classify(4,4) = %v, want BorderBottom", got)
		}
		if got := Classify(Pt(96, 96), b); got != BorderTop {
			t.Errorf("Classify(96,96) = %v, want BorderTop", got)
		}
	})
}

// Every point maps to exactly one region and the error sentinel is
// unreachable for geometry that passes Validate.
func TestClassifyTotality(t *testing.T) {
	boxes := []Box{
		unitBox(),
		{Left: 0, Right: 100, Bottom: 0, Top: 100},
		{Left: 0, Right: 100, Bottom: 0, Top: 100, BorderWidth: 5, BorderRadius: 20},
		{Left: 0, Right: 100, Bottom: 0, Top: 100, BorderWidth: 20, BorderRadius: 3},
		{Left: 10, Right: 90, Bottom: 20, Top: 80, MarginLeft: 5, MarginRight: 7,
			MarginBottom: 3, MarginTop: 9, BorderWidth: 8, BorderRadius: 12},
		{Left: 0, Right: 1, Bottom: 0, Top: 1, BorderWidth: 0.4, BorderRadius: 0.3},
		// Border wider than half the box: everything inside is border.
		{Left: 0, Right: 20, Bottom: 0, Top: 20, BorderWidth: 15},
	}
	for bi, b := range boxes {
		if err := b.Validate(); err != nil {
			t.Fatalf("box %d: %v", bi, err)
		}
		for y := -10.0; y <= 110; y += 0.5 {
			for x := -10.0; x <= 110; x += 0.5 {
				if got := Classify(Pt(x, y), b); got == RegionError {
					t.Fatalf("box %d: Classify(%g,%g) = RegionError", bi, x, y)
				}
			}
		}
	}
}

// A symmetric box classifies mirrored points into mirrored regions.
func TestClassifySymmetry(t *testing.T) {
	b := unitBox()
	b.BorderRadius = 12

	mirrorX := map[Region]Region{
		Outside: Outside, Background: Background,
		BorderLeft: BorderRight, BorderRight: BorderLeft,
		BorderTop: BorderTop, BorderBottom: BorderBottom,
	}
	mirrorY := map[Region]Region{
		Outside: Outside, Background: Background,
		BorderLeft: BorderLeft, BorderRight: BorderRight,
		BorderTop: BorderBottom, BorderBottom: BorderTop,
	}

	// Offsets chosen so no sample lands on an exact tie.
	for y := -4.9; y < 105; y += 1.7 {
		for x := -4.9; x < 105; x += 1.7 {
			r := Classify(Pt(x, y), b)
			if rx := Classify(Pt(100-x, y), b); rx != mirrorX[r] {
				t.Fatalf("x mirror of (%g,%g): got %v, want %v (from %v)",
					x, y, rx, mirrorX[r], r)
			}
			if ry := Classify(Pt(x, 100-y), b); ry != mirrorY[r] {
				t.Fatalf("y mirror of (%g,%g): got %v, want %v (from %v)",
					x, y, ry, mirrorY[r], r)
			}
		}
	}
}

// Any radius up to the border width collapses to the same outline: radwid
// stays at the width and the inner radius at zero, so classification is
// identical to the square-corner case.
func TestClassifyRadiusDegeneracy(t *testing.T) {
	square := unitBox()
	for _, radius := range []float64{0, 2, 5} {
		rounded := unitBox()
		rounded.BorderRadius = radius
		for y := -2.0; y <= 102; y += 0.7 {
			for x := -2.0; x <= 102; x += 0.7 {
				want := Classify(Pt(x, y), square)
				if got := Classify(Pt(x, y), rounded); got != want {
					t.Fatalf("radius %g diverged at (%g,%g): %v != %v",
						radius, x, y, got, want)
				}
			}
		}
	}
}

// Walking outward from the interior always crosses a border band before
// leaving the box: along any ray, Background never touches Outside directly.
func TestClassifyMonotonicContainment(t *testing.T) {
	boxes := []Box{
		unitBox(),
		{Left: 0, Right: 100, Bottom: 0, Top: 100, BorderWidth: 5, BorderRadius: 20},
		{Left: 0, Right: 100, Bottom: 0, Top: 100, BorderWidth: 20, BorderRadius: 3},
		{Left: 10, Right: 90, Bottom: 20, Top: 80, MarginLeft: 5, MarginRight: 7,
			MarginBottom: 3, MarginTop: 9, BorderWidth: 8, BorderRadius: 12},
	}
	const rays = 60
	for bi, b := range boxes {
		center := Pt((b.Left+b.Right)/2, (b.Bottom+b.Top)/2)
		for i := 0; i < rays; i++ {
			// The 0.37 phase keeps rays off the exact axes and diagonals.
			theta := (float64(i) + 0.37) * 2 * math.Pi / rays
			dir := Pt(math.Cos(theta), math.Sin(theta))
			prev := Classify(center, b)
			for d := 0.05; d < 120; d += 0.05 {
				cur := Classify(center.Add(dir.Mul(d)), b)
				if prev == Background && cur == Outside {
					t.Fatalf("box %d ray %d: Background -> Outside at distance %g",
						bi, i, d)
				}
				prev = cur
			}
		}
	}
}

// Growing the border radius never turns an Outside point into an interior
// one along the box diagonal; the rounded outline only shrinks the shape.
func TestClassifyRadiusShrinksOutline(t *testing.T) {
	for radius := 0.0; radius <= 50; radius += 5 {
		b := unitBox()
		b.BorderRadius = radius
		for d := 0.1; d < 10; d += 0.3 {
			small := Classify(Pt(d, d), unitBox())
			grown := Classify(Pt(d, d), b)
			if small == Outside && grown != Outside {
				t.Fatalf("radius %g resurrected outside point (%g,%g): %v",
					radius, d, d, grown)
			}
		}
	}
}

func TestRegionString(t *testing.T) {
	tests := []struct {
		r    Region
		want string
	}{
		{Outside, "Outside"},
		{BorderTop, "BorderTop"},
		{BorderRight, "BorderRight"},
		{BorderBottom, "BorderBottom"},
		{BorderLeft, "BorderLeft"},
		{Background, "Background"},
		{RegionError, "RegionError"},
		{Region(200), "Region(invalid)"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("Region(%d).String() = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestRegionIsBorder(t *testing.T) {
	for r := Outside; r <= RegionError; r++ {
		want := r == BorderTop || r == BorderRight || r == BorderBottom || r == BorderLeft
		if got := r.IsBorder(); got != want {
			t.Errorf("%v.IsBorder() = %v, want %v", r, got, want)
		}
	}
}

func TestOutsideEdge(t *testing.T) {
	b := unitBox()

	tests := []struct {
		name     string
		p        Point
		wantEdge Edge
		wantOut  bool
	}{
		{"left", Pt(-5, 50), EdgeLeft, true},
		{"right", Pt(105, 50), EdgeRight, true},
		{"top", Pt(50, 105), EdgeTop, true},
		{"bottom", Pt(50, -5), EdgeBottom, true},
		{"corner favors deeper violation", Pt(-5, -7), EdgeBottom, true},
		{"equal violation keeps earlier edge", Pt(-5, 105), EdgeLeft, true},
		{"inside", Pt(50, 50), 0, false},
		{"on edge", Pt(0, 50), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge, outside := OutsideEdge(tt.p, b)
			if outside != tt.wantOut {
				t.Fatalf("OutsideEdge(%v) outside = %v, want %v", tt.p, outside, tt.wantOut)
			}
			if outside && edge != tt.wantEdge {
				t.Errorf("OutsideEdge(%v) = %v, want %v", tt.p, edge, tt.wantEdge)
			}
		})
	}
}

func TestEdgeString(t *testing.T) {
	tests := []struct {
		e    Edge
		want string
	}{
		{EdgeLeft, "Left"},
		{EdgeRight, "Right"},
		{EdgeTop, "Top"},
		{EdgeBottom, "Bottom"},
		{Edge(9), "Edge(invalid)"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("Edge(%d).String() = %q, want %q", tt.e, got, tt.want)
		}
	}
}

func BenchmarkClassify(b *testing.B) {
	configs := []struct {
		name string
		box  Box
	}{
		{"square", unitBox()},
		{"rounded", Box{Left: 0, Right: 100, Bottom: 0, Top: 100,
			BorderWidth: 5, BorderRadius: 15}},
	}
	for _, cfg := range configs {
		b.Run(cfg.name, func(b *testing.B) {
			i := 0
			for b.Loop() {
				x := float64(i % 110)
				y := float64((i * 7) % 110)
				_ = Classify(Pt(x, y), cfg.box)
				i++
			}
		})
	}
}

func ExampleClassify() {
	b := Box{Left: 0, Right: 100, Bottom: 0, Top: 100, BorderWidth: 5}
	fmt.Println(Classify(Pt(50, 50), b))
	fmt.Println(Classify(Pt(2, 50), b))
	fmt.Println(Classify(Pt(-1, 50), b))
	// Output:
	// Background
	// BorderLeft
	// Outside
}
