package ui

// smoothingFactor weights the previous meter value against the new one.
const smoothingFactor = 0.6

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
