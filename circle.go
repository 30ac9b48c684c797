package boxshade

// ShadeCircle computes the color of one point of an antialiased stippled
// circle outline. The boolean reports visibility: points beyond the ring's
// antialiased extent are discarded.
//
// The stipple phase is the arc length from the circle's +x axis, counter
// clockwise, so a pattern of total length 2*pi*radius/n repeats n times
// around the ring.
func ShadeCircle(p, center Point, radius float64, style *LineStyle) (RGBA, bool) {
	dist, arc := ringDistance(p, center, radius)
	coverage := smoothstepCoverage(dist - style.Width/2)
	if coverage <= 0 {
		return Transparent, false
	}
	c := style.colorAt(arc)
	c.A *= coverage
	return c, true
}
