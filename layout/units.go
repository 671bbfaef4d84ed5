package layout

import "math"

// The renderer draws on a canvas where one unit is one millimetre and
// rasterizes at one dot per millimetre, so a layout pixel equals one canvas
// unit. Font sizes are handed to the font system in points.

// Conversion constants between pt and mm (= px).
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt converts a pixel font size to the point size the font system expects.
func PxToPt(px float64) float64 { return px * MmToPt }

// PtToPx converts a point size back to pixels.
func PtToPx(pt float64) float64 { return pt * PtToMm }

// scaled truncates base×ratio×scale toward zero, the way every derived size
// on the card is computed.
func scaled(base int, ratio, scale float64) int {
	return int(float64(base) * ratio * scale)
}

// fontPx is scaled but never below one pixel, so tiny canvases still measure.
func fontPx(base int, ratio, scale float64) float64 {
	return math.Max(1, float64(scaled(base, ratio, scale)))
}

// ceilPx rounds a measured extent up to whole pixels.
func ceilPx(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Ceil(v - 1e-9))
}

// centerOffset splits the slack evenly; overflowing content gets no offset.
func centerOffset(available, required int) int {
	if available > required {
		return (available - required) / 2
	}
	return 0
}
