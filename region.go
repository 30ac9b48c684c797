package boxshade

import "math"

// Region is the semantic classification of a point against a Box: outside
// the margin box, on one of the four border edges, or in the interior
// background. RegionError is a defensive sentinel that is unreachable for
// valid geometry; callers should treat it as a contract violation, not as a
// drawable region.
type Region uint8

const (
	Outside Region = iota
	BorderTop
	BorderRight
	BorderBottom
	BorderLeft
	Background
	RegionError
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case Outside:
		return "Outside"
	case BorderTop:
		return "BorderTop"
	case BorderRight:
		return "BorderRight"
	case BorderBottom:
		return "BorderBottom"
	case BorderLeft:
		return "BorderLeft"
	case Background:
		return "Background"
	case RegionError:
		return "RegionError"
	}
	return "Region(invalid)"
}

// IsBorder reports whether the region is one of the four border edges.
func (r Region) IsBorder() bool {
	switch r {
	case BorderTop, BorderRight, BorderBottom, BorderLeft:
		return true
	}
	return false
}

// Classify maps a point to its Region within the box. It is a pure function
// of its arguments and is total: every point maps to exactly one region, and
// for geometry that passes Box.Validate the RegionError branch is
// unreachable.
//
// The rounded outline decomposes into four straight edge bands and four
// corner annuli, each tested with O(1) arithmetic:
//
//  1. Signed distances to the margin-inset edges, positive inside. Any
//     negative distance is Outside.
//  2. radwid = max(radius, width) is the outer radius of the corner test
//     region; rad = max(0, radius-width) is where the corner's border band
//     ends and background begins.
//  3. Points beyond radwid of both edges on one axis lie on a straight edge
//     band and only the other axis decides the region.
//  4. Otherwise the point is near a corner: compare its squared distance to
//     the rounding center against radwid² (outside the arc) and rad²
//     (inside the background).
//
// At exact edge-distance ties the second-named edge wins (right over left,
// top over bottom, and the axis-aligned edge over the perpendicular one at
// 45° corner miters). The strict less-than comparisons are a fixed contract:
// corner appearance depends on them.
func Classify(p Point, b Box) Region {
	distLeft := p.X - (b.Left + b.MarginLeft)
	distRight := (b.Right - b.MarginRight) - p.X
	distBottom := p.Y - (b.Bottom + b.MarginBottom)
	distTop := (b.Top - b.MarginTop) - p.Y

	if distLeft < 0 || distRight < 0 || distBottom < 0 || distTop < 0 {
		return Outside
	}

	radwid := math.Max(b.BorderRadius, b.BorderWidth)
	rad := math.Max(0, b.BorderRadius-b.BorderWidth)
	radwid2 := radwid * radwid
	rad2 := rad * rad

	// Straight-edge fast paths: outside any corner's rounding influence.
	if distBottom > radwid && distTop > radwid {
		if distLeft > b.BorderWidth && distRight > b.BorderWidth {
			return Background
		}
		if distLeft < distRight {
			return BorderLeft
		}
		return BorderRight
	}
	if distLeft > radwid && distRight > radwid {
		if distBottom > b.BorderWidth && distTop > b.BorderWidth {
			return Background
		}
		if distBottom < distTop {
			return BorderBottom
		}
		return BorderTop
	}

	// Corner paths. The fast paths above guarantee at least one vertical and
	// one horizontal distance are <= radwid, so exactly one branch matches.
	switch {
	case distTop <= radwid && distLeft <= radwid:
		return classifyCorner(distLeft, distTop, BorderLeft, BorderTop, radwid, radwid2, rad2)
	case distTop <= radwid && distRight <= radwid:
		return classifyCorner(distRight, distTop, BorderRight, BorderTop, radwid, radwid2, rad2)
	case distBottom <= radwid && distLeft <= radwid:
		return classifyCorner(distLeft, distBottom, BorderLeft, BorderBottom, radwid, radwid2, rad2)
	case distBottom <= radwid && distRight <= radwid:
		return classifyCorner(distRight, distBottom, BorderRight, BorderBottom, radwid, radwid2, rad2)
	}

	// Unreachable for valid geometry.
	return RegionError
}

// classifyCorner tests a point against one corner's annulus. da and db are
// the distances to the corner's two adjacent edges, ra and rb the regions
// for those edges.
func classifyCorner(da, db float64, ra, rb Region, radwid, radwid2, rad2 float64) Region {
	dx := da - radwid
	dy := db - radwid
	r2 := dx*dx + dy*dy
	if r2 > radwid2 {
		return Outside
	}
	if r2 < rad2 {
		return Background
	}
	if da < db {
		return ra
	}
	return rb
}

// Edge identifies one of the four margin-box edges.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "Left"
	case EdgeRight:
		return "Right"
	case EdgeTop:
		return "Top"
	case EdgeBottom:
		return "Bottom"
	}
	return "Edge(invalid)"
}

// OutsideEdge reports which margin-box edge an Outside point violated,
// chosen by the most negative of the four signed distances with ties broken
// in the order left, right, top, bottom. The second return is false when the
// point is not outside the margin box at all.
//
// This refinement exists for debug visualization; Classify does not use it.
func OutsideEdge(p Point, b Box) (Edge, bool) {
	distLeft := p.X - (b.Left + b.MarginLeft)
	distRight := (b.Right - b.MarginRight) - p.X
	distBottom := p.Y - (b.Bottom + b.MarginBottom)
	distTop := (b.Top - b.MarginTop) - p.Y

	if distLeft >= 0 && distRight >= 0 && distBottom >= 0 && distTop >= 0 {
		return 0, false
	}

	edge, best := EdgeLeft, distLeft
	if distRight < best {
		edge, best = EdgeRight, distRight
	}
	if distTop < best {
		edge, best = EdgeTop, distTop
	}
	if distBottom < best {
		edge = EdgeBottom
	}
	return edge, true
}
