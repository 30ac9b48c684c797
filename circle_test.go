package boxshade

import (
	"math"
	"testing"
)

func TestShadeCircle(t *testing.T) {
	center := Pt(50, 50)
	const radius = 20.0
	style := NewLineStyle(RGB(0, 1, 0), 4)

	t.Run("on ring is fully covered", func(t *testing.T) {
		c, visible := ShadeCircle(Pt(70, 50), center, radius, style)
		if !visible || c != style.Color {
			t.Errorf("ShadeCircle = %+v (visible %v)", c, visible)
		}
	})

	t.Run("ring edge is partially covered", func(t *testing.T) {
		// Distance 2 from the ring centerline = half width: coverage 0.5.
		c, visible := ShadeCircle(Pt(72, 50), center, radius, style)
		if !visible {
			t.Fatal("ring edge discarded")
		}
		if math.Abs(c.A-0.5) > 1e-12 {
			t.Errorf("ring edge alpha = %g, want 0.5", c.A)
		}
	})

	t.Run("center is discarded", func(t *testing.T) {
		if _, visible := ShadeCircle(center, center, radius, style); visible {
			t.Error("circle center should be discarded")
		}
	})

	t.Run("far outside is discarded", func(t *testing.T) {
		if _, visible := ShadeCircle(Pt(90, 50), center, radius, style); visible {
			t.Error("point 20 beyond the ring should be discarded")
		}
	})
}

func TestShadeCircleStipple(t *testing.T) {
	center := Pt(50, 50)
	const radius = 20.0
	style := NewLineStyle(RGB(0, 1, 0), 4)
	style.GapColor = RGB(1, 0, 1)
	// Half circumference per span: right half on, left half off.
	style.Stipple = NewStipple(math.Pi*radius, math.Pi*radius)

	t.Run("zero angle is on", func(t *testing.T) {
		c, _ := ShadeCircle(Pt(70, 50), center, radius, style)
		if c != style.Color {
			t.Errorf("arc 0 = %+v", c)
		}
	})
	t.Run("quarter turn is on", func(t *testing.T) {
		c, _ := ShadeCircle(Pt(50, 70), center, radius, style)
		if c != style.Color {
			t.Errorf("arc pi/2*r = %+v", c)
		}
	})
	t.Run("half turn starts the gap", func(t *testing.T) {
		c, _ := ShadeCircle(Pt(30, 50), center, radius, style)
		if c != style.GapColor {
			t.Errorf("arc pi*r = %+v", c)
		}
	})
	t.Run("three quarters is in the gap", func(t *testing.T) {
		c, _ := ShadeCircle(Pt(50, 30), center, radius, style)
		if c != style.GapColor {
			t.Errorf("arc 3pi/2*r = %+v", c)
		}
	})
}
