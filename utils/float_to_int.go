package utils

import "math"

// Float32ToInt16 scales x from [-1,1] to the int16 range, rounding to the
// nearest step and clamping anything outside. Scaling by 32768 keeps
// int16 -> float32 -> int16 lossless for values produced by dividing by
// 32768. NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	v := math.Round(float64(x) * 32768.0)

	switch {
	case v != v:
		return 0
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}

	return int16(v)
}

// Int16ToFloat32 is the inverse scaling used by the PCM decoders.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}
