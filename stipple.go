package boxshade

import "math"

// Stipple defines an on/off pattern along a stroke's arc length, used for
// dashed lines and circles. A pattern consists of alternating on and off
// lengths; during the on spans the stroke uses its primary color, during the
// off spans its secondary color.
//
// A two-element [on, off] pair is the common case; any even-length list
// alternates from on. An odd number of elements is logically duplicated to
// form an even-length pattern (e.g., [5] becomes [5, 5]).
type Stipple struct {
	// Array contains alternating on/off lengths.
	Array []float64

	// Offset is the starting offset into the pattern, in arc-length units.
	// Linestrips advance it by each segment's length so the pattern runs
	// continuously across joints.
	Offset float64
}

// NewStipple creates a stipple pattern from alternating on/off lengths.
// Negative lengths are made absolute. Returns nil if no lengths are provided
// or all lengths are zero; a nil *Stipple means a solid stroke.
func NewStipple(lengths ...float64) *Stipple {
	if len(lengths) == 0 {
		return nil
	}

	nonzero := false
	for _, l := range lengths {
		if l != 0 {
			nonzero = true
			break
		}
	}
	if !nonzero {
		return nil
	}

	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
	}
	return &Stipple{Array: normalized}
}

// WithOffset returns a copy of the Stipple with the given offset.
func (s *Stipple) WithOffset(offset float64) *Stipple {
	if s == nil {
		return nil
	}
	return &Stipple{Array: s.Array, Offset: offset}
}

// PatternLength returns the total length of one complete pattern cycle,
// including the duplication for odd-length arrays.
func (s *Stipple) PatternLength() float64 {
	if s == nil || len(s.Array) == 0 {
		return 0
	}
	var total float64
	for _, l := range s.Array {
		total += l
	}
	if len(s.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// IsDashed reports whether the stipple actually alternates. A nil Stipple,
// an empty array, or a pattern with no off span renders as a solid stroke.
func (s *Stipple) IsDashed() bool {
	if s == nil || len(s.Array) == 0 {
		return false
	}
	arr := s.effectiveArray()
	for i := 1; i < len(arr); i += 2 {
		if arr[i] > 0 {
			return true
		}
	}
	return false
}

// On reports whether the given arc-length distance falls in an on span of
// the pattern. Distances before the offset wrap around the pattern cycle.
func (s *Stipple) On(distance float64) bool {
	if !s.IsDashed() {
		return true
	}

	total := s.PatternLength()
	pos := math.Mod(distance+s.Offset, total)
	if pos < 0 {
		pos += total
	}

	for i, l := range s.effectiveArray() {
		if pos < l {
			return i%2 == 0
		}
		pos -= l
	}
	// Accumulated float error can leave pos just past the final span; that
	// span is the off half of the last pair.
	return false
}

// Scale returns a copy with all lengths and the offset multiplied by the
// given factor. Stipple lengths are in user-space units, so they scale with
// the coordinate transform (Cairo/Skia convention). Non-positive factors
// return the receiver unchanged.
func (s *Stipple) Scale(factor float64) *Stipple {
	if s == nil || factor <= 0 {
		return s
	}
	scaled := make([]float64, len(s.Array))
	for i, l := range s.Array {
		scaled[i] = l * factor
	}
	return &Stipple{Array: scaled, Offset: s.Offset * factor}
}

// Clone creates a deep copy of the Stipple.
func (s *Stipple) Clone() *Stipple {
	if s == nil {
		return nil
	}
	arr := make([]float64, len(s.Array))
	copy(arr, s.Array)
	return &Stipple{Array: arr, Offset: s.Offset}
}

// effectiveArray returns the array with odd-length arrays duplicated.
func (s *Stipple) effectiveArray() []float64 {
	if s == nil || len(s.Array) == 0 {
		return nil
	}
	if len(s.Array)%2 == 0 {
		return s.Array
	}
	result := make([]float64, len(s.Array)*2)
	copy(result, s.Array)
	copy(result[len(s.Array):], s.Array)
	return result
}
