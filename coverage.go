package boxshade

import "math"

// antialiasWidth controls the smoothstep transition width in pixels for the
// line and circle shaders. A value of 0.7 produces smooth anti-aliasing at
// standard DPI.
const antialiasWidth = 0.7

// smoothstepCoverage converts a signed distance to an anti-aliased coverage
// value using a Hermite smoothstep function.
//
// sdf < -antialiasWidth => 1.0 (fully inside)
// sdf > +antialiasWidth => 0.0 (fully outside)
// Otherwise             => smooth transition
func smoothstepCoverage(sdf float64) float64 {
	if sdf >= antialiasWidth {
		return 0
	}
	if sdf <= -antialiasWidth {
		return 1
	}
	t := (sdf + antialiasWidth) / (2 * antialiasWidth)
	// Hermite smoothstep: 3t^2 - 2t^3
	return 1 - (t * t * (3 - 2*t))
}

// segmentDistance returns the perpendicular distance from p to the segment
// p0-p1 and the arc length from p0 to the closest point on the segment.
// Degenerate segments (p0 == p1) measure distance to the single point.
func segmentDistance(p, p0, p1 Point) (dist, along float64) {
	d := p1.Sub(p0)
	len2 := d.LengthSquared()
	if len2 == 0 {
		return p.Distance(p0), 0
	}
	t := p.Sub(p0).Dot(d) / len2
	t = math.Max(0, math.Min(1, t))
	closest := p0.Lerp(p1, t)
	return p.Distance(closest), t * math.Sqrt(len2)
}

// ringDistance returns the signed distance from p to the circle of the
// given center and radius (negative inside the ring's center line never
// occurs; the value is |dist(center)-radius|) and the arc length from the
// circle's zero angle (+x axis, counter-clockwise) to p's angular position.
func ringDistance(p, center Point, radius float64) (dist, arc float64) {
	d := p.Sub(center)
	dist = math.Abs(d.Length() - radius)
	angle := math.Atan2(d.Y, d.X)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return dist, angle * radius
}
