package domain

// radiusPerMagnitude scales magnitude to marker radius in pixels.
const radiusPerMagnitude = 5

// SizeFromMagnitude maps a magnitude to a marker radius. It is total over all
// reals: zero and negative magnitudes yield zero and negative radii, which
// [Mapper.MapFeature] clamps before they reach the map.
func SizeFromMagnitude(magnitude float64) float64 {
	return magnitude * radiusPerMagnitude
}

// ColorFromDepth classifies a hypocenter depth (km) into a color bucket.
// Tests are strict greater-than, evaluated deepest first, so a depth exactly
// on a threshold falls into the shallower bucket.
func ColorFromDepth(depth float64) ColorBucket {
	switch {
	case depth > 90:
		return ColorRed
	case depth > 70:
		return ColorLightCoral
	case depth > 50:
		return ColorYellow
	case depth > 30:
		return ColorGreenYellow
	case depth > 10:
		return ColorGreen
	default:
		return ColorDarkGreen
	}
}

// Palette returns every color bucket from deepest to shallowest.
func Palette() []ColorBucket {
	return []ColorBucket{
		ColorRed,
		ColorLightCoral,
		ColorYellow,
		ColorGreenYellow,
		ColorGreen,
		ColorDarkGreen,
	}
}
