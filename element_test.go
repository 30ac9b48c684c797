package boxshade

import "testing"

// testStyle returns a style with a distinct color per border edge.
func testStyle() *Style {
	return &Style{
		BorderTopColor:    RGB(1, 0, 0),
		BorderRightColor:  RGB(0, 1, 0),
		BorderBottomColor: RGB(0, 0, 1),
		BorderLeftColor:   RGB(1, 1, 0),
		Background:        RGB(0.2, 0.2, 0.2),
	}
}

func TestShadeElement(t *testing.T) {
	b := unitBox()
	style := testStyle()

	tests := []struct {
		name    string
		p       Point
		want    RGBA
		visible bool
	}{
		{"background", Pt(50, 50), style.Background, true},
		{"left border", Pt(2, 50), style.BorderLeftColor, true},
		{"right border", Pt(98, 50), style.BorderRightColor, true},
		{"bottom border", Pt(50, 2), style.BorderBottomColor, true},
		{"top border", Pt(50, 97), style.BorderTopColor, true},
		{"outside is discarded", Pt(-1, 50), Transparent, false},
		{"clipped corner is discarded", Pt(0, 0), Transparent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, visible := ShadeElement(tt.p, b, style)
			if visible != tt.visible {
				t.Fatalf("ShadeElement(%v) visible = %v, want %v", tt.p, visible, tt.visible)
			}
			if got != tt.want {
				t.Errorf("ShadeElement(%v) = %+v, want %+v", tt.p, got, tt.want)
			}
		})
	}
}

func TestShadeElementImage(t *testing.T) {
	b := unitBox()
	b.SetPadding(10) // content is [15,85] x [15,85]

	style := testStyle()
	style.Image = SolidSource(RGB(0, 0, 1))

	t.Run("opaque image covers background", func(t *testing.T) {
		got, visible := ShadeElement(Pt(50, 50), b, style)
		if !visible || got != RGB(0, 0, 1) {
			t.Errorf("ShadeElement = %+v (visible %v)", got, visible)
		}
	})

	t.Run("translucent image composites over background", func(t *testing.T) {
		s := style.Clone()
		s.Background = White
		s.Image = SolidSource(RGBA{R: 1, A: 0.5})
		got, _ := ShadeElement(Pt(50, 50), b, s)
		want := RGBA{R: 1, G: 0.5, B: 0.5, A: 1}
		if !colorsClose(got, want, 1e-12) {
			t.Errorf("ShadeElement = %+v, want %+v", got, want)
		}
	})

	t.Run("padding band keeps flat background", func(t *testing.T) {
		// (10, 50) is Background but left of the content rectangle.
		got, visible := ShadeElement(Pt(10, 50), b, style)
		if !visible || got != style.Background {
			t.Errorf("ShadeElement in padding = %+v (visible %v)", got, visible)
		}
	})

	t.Run("nil image keeps flat background", func(t *testing.T) {
		s := style.Clone()
		s.Image = nil
		got, _ := ShadeElement(Pt(50, 50), b, s)
		if got != s.Background {
			t.Errorf("ShadeElement = %+v, want background", got)
		}
	})
}

func TestStyleBorderColor(t *testing.T) {
	style := testStyle()

	tests := []struct {
		r    Region
		want RGBA
	}{
		{BorderTop, style.BorderTopColor},
		{BorderRight, style.BorderRightColor},
		{BorderBottom, style.BorderBottomColor},
		{BorderLeft, style.BorderLeftColor},
		{Background, Transparent},
		{Outside, Transparent},
	}
	for _, tt := range tests {
		if got := style.BorderColor(tt.r); got != tt.want {
			t.Errorf("BorderColor(%v) = %+v, want %+v", tt.r, got, tt.want)
		}
	}
}

func TestStyleSetBorderColor(t *testing.T) {
	s := NewStyle()
	s.SetBorderColor(White)
	for _, r := range []Region{BorderTop, BorderRight, BorderBottom, BorderLeft} {
		if got := s.BorderColor(r); got != White {
			t.Errorf("BorderColor(%v) = %+v after SetBorderColor", r, got)
		}
	}
}
