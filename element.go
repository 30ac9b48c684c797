package boxshade

// ShadeElement computes the color of one point of a styled rectangle. The
// second return value reports whether the point produces a visible pixel at
// all: false means discard (the caller must not write anything, which is
// distinct from writing transparent black).
//
// Border points take the matching edge color from the style. Background
// points take the flat background color, with the style's image composited
// over it wherever the content rectangle provides texture coverage.
//
// ShadeElement assumes geometry that passes Box.Validate. If the classifier
// still reaches its unreachable branch the pixel is discarded and the event
// is logged; no plausible color is fabricated.
func ShadeElement(p Point, b Box, style *Style) (RGBA, bool) {
	region := Classify(p, b)
	switch region {
	case Outside:
		return Transparent, false
	case Background:
		return shadeBackground(p, b, style), true
	case RegionError:
		Logger().Error("boxshade: classifier contract violation",
			"point", p, "box", b)
		return Transparent, false
	default:
		return style.BorderColor(region), true
	}
}

// shadeBackground composites the content image (if any) over the flat
// background color.
func shadeBackground(p Point, b Box, style *Style) RGBA {
	if style.Image == nil {
		return style.Background
	}
	u, v := b.ContentUV(p)
	if u < 0 || u > 1 || v < 0 || v > 1 {
		// No texture coverage here: content area smaller than the mapped
		// region, or padding band.
		return style.Background
	}
	return style.Image.SampleUV(u, v).Over(style.Background)
}
