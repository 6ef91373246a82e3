package imaging

import "math"

// DimensionCap returns the longest-side limit for a quality tier.
func DimensionCap(quality float64) int {
	switch {
	case quality > 0.6:
		return 1000
	case quality > 0.4:
		return 800
	default:
		return 600
	}
}

// PlanDimensions keeps the aspect ratio and only ever scales down so that
// max(width, height) <= DimensionCap(quality).
func PlanDimensions(width, height int, quality float64) (int, int) {
	limit := DimensionCap(quality)

	longest := width
	if height > longest {
		longest = height
	}
	if longest <= limit {
		return width, height
	}

	scale := float64(limit) / float64(longest)
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))

	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > limit {
		w = limit
	}
	if h > limit {
		h = limit
	}

	return w, h
}
